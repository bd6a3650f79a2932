package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/customer-directory-api/internal/directory"
	"github.com/customer-directory-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Customer{})
	require.NoError(t, err)

	return db
}

// stubDirectory is an in-memory directory.Client recording how often it is
// consulted.
type stubDirectory struct {
	items []directory.Customer
	err   error
	calls int
}

func (s *stubDirectory) ListCustomers(ctx context.Context) ([]directory.Customer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func TestLoadNeverFetchesWhenStoreIsNonEmpty(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Customer{ID: "c1", Name: "Ann", Role: "Admin"}).Error)

	dir := &stubDirectory{items: []directory.Customer{{ID: "remote", Name: "Remote", Role: "Admin"}}}
	service := NewCustomerService(db, dir, false)

	customers, err := service.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, customers, 1)
	assert.Equal(t, "c1", customers[0].ID)
	assert.Equal(t, 0, dir.calls, "cache hit must short-circuit the remote fetch")
}

func TestLoadSeedsFromRemoteWhenStoreIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{items: []directory.Customer{
		{ID: "r1", Name: "Hazel Nutt", Email: "hazel@example.com", Role: "ADMIN"},
		{ID: "r2", Name: "Ben Dover", Role: "manager"},
	}}
	service := NewCustomerService(db, dir, false)

	customers, err := service.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, 1, dir.calls)

	// Roles are persisted verbatim; normalization happens at comparison time
	var persisted models.Customer
	require.NoError(t, db.First(&persisted, "id = ?", "r1").Error)
	assert.Equal(t, "ADMIN", persisted.Role)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestLoadDegradesToEmptyOnFetchFailure(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{err: &directory.FetchError{Err: errors.New("connection refused")}}
	service := NewCustomerService(db, dir, false)

	customers, err := service.Load(context.Background())

	var fetchErr *directory.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Empty(t, customers)

	// No partial writes
	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestRefreshDoesNotRefetchOnceSeeded(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{items: []directory.Customer{{ID: "r1", Name: "Ann", Role: "Admin"}}}
	service := NewCustomerService(db, dir, false)

	_, err := service.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, dir.calls)

	customers, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, 1, dir.calls, "refresh only has an effect while the cache is empty")
}

func TestRefreshRetriesWhileStoreIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{err: &directory.FetchError{Err: errors.New("timeout")}}
	service := NewCustomerService(db, dir, false)

	_, err := service.Load(context.Background())
	require.Error(t, err)

	// The store is still empty, so an explicit refresh consults the remote
	// directory again.
	dir.err = nil
	dir.items = []directory.Customer{{ID: "r1", Name: "Ann", Role: "Admin"}}

	customers, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, 2, dir.calls)
}

func TestLoadSeedsFallbackSamplesWhenEnabled(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{err: &directory.FetchError{Err: errors.New("unreachable")}}
	service := NewCustomerService(db, dir, true)

	customers, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, customers)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, len(customers), count)
}

func TestCreateThenDeleteRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Customer{ID: "existing", Name: "Ann", Role: "Admin"}).Error)
	service := NewCustomerService(db, &stubDirectory{}, false)

	created, err := service.Create(models.CustomerForm{
		FirstName: "Jane",
		LastName:  "Lee",
		Email:     "jane@example.com",
		Role:      "manager",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jane Lee", created.Name)
	assert.Equal(t, models.RoleManager, created.Role)

	require.NoError(t, service.Delete(created.ID))

	// The store is back to its pre-create state
	var remaining []models.Customer
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "existing", remaining[0].ID)
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	db := setupTestDB(t)
	service := NewCustomerService(db, &stubDirectory{}, false)

	_, err := service.Create(models.CustomerForm{FirstName: "Jo3", LastName: "Lee", Role: "Admin"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "firstName", verr.Field)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 0, count, "invalid form must not mutate the store")
}

func TestUpdateOverwritesFields(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Customer{ID: "c1", Name: "Old Name", Email: "old@example.com", Role: "Admin"}).Error)
	service := NewCustomerService(db, &stubDirectory{}, false)

	updated, err := service.Update("c1", models.CustomerForm{
		FirstName: "New",
		LastName:  "Name",
		Email:     "new@example.com",
		Role:      "Manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", updated.ID)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, models.RoleManager, updated.Role)
}

func TestUpdateMissingIDSurfacesNotFound(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Customer{ID: "c1", Name: "Ann", Role: "Admin"}).Error)
	service := NewCustomerService(db, &stubDirectory{}, false)

	_, err := service.Update("missing", models.CustomerForm{
		FirstName: "Jane",
		LastName:  "Lee",
		Role:      "Admin",
	})
	assert.ErrorIs(t, err, models.ErrCustomerNotFound)

	// The store is unchanged
	var existing models.Customer
	require.NoError(t, db.First(&existing, "id = ?", "c1").Error)
	assert.Equal(t, "Ann", existing.Name)
}

func TestDeleteMissingIDSurfacesNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewCustomerService(db, &stubDirectory{}, false)

	assert.ErrorIs(t, service.Delete("missing"), models.ErrCustomerNotFound)
}

func TestSectionsDerivesFromLoadedSet(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{items: []directory.Customer{
		{ID: "r1", Name: "bob", Role: "Admin"},
		{ID: "r2", Name: "alice", Role: "Manager"},
	}}
	service := NewCustomerService(db, dir, false)

	sections, err := service.Sections(context.Background(), models.TabAll, "")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "A", sections[0].Title)
	assert.Equal(t, "B", sections[1].Title)
}

func TestSectionsReturnsEmptyModelOnFetchFailure(t *testing.T) {
	db := setupTestDB(t)
	dir := &stubDirectory{err: &directory.FetchError{Err: errors.New("down")}}
	service := NewCustomerService(db, dir, false)

	sections, err := service.Sections(context.Background(), models.TabAll, "")

	var fetchErr *directory.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Empty(t, sections)
}
