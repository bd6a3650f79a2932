package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/customer-directory-api/internal/directory"
	"github.com/customer-directory-api/internal/models"
)

// CustomerService owns the local customer store. It seeds the store from the
// remote directory exactly once (when the store is empty) and is the only
// writer; everything the list screens show is derived from what it returns.
type CustomerService interface {
	// Load returns all customers in the local store. When the store is
	// empty it seeds from the remote directory first. On a failed fetch it
	// returns the empty set together with the *directory.FetchError so the
	// caller can decide whether to log or surface it.
	Load(ctx context.Context) ([]models.Customer, error)
	// Refresh has the same semantics as Load. It does not force a re-fetch
	// once the store is seeded; the remote directory is only consulted on a
	// cache miss. That asymmetry is the documented contract of the seeding
	// policy, not an oversight.
	Refresh(ctx context.Context) ([]models.Customer, error)
	// Sections loads the customer set and derives the grouped view model
	// for the given tab and search query.
	Sections(ctx context.Context, tab models.Tab, query string) ([]models.Section, error)
	// Create validates the form and persists a new customer with a locally
	// generated id.
	Create(form models.CustomerForm) (models.Customer, error)
	// Update validates the form and overwrites name, email and role of the
	// customer with the given id. Returns models.ErrCustomerNotFound when
	// no such customer exists.
	Update(id string, form models.CustomerForm) (models.Customer, error)
	// Delete removes the customer with the given id. Returns
	// models.ErrCustomerNotFound when no such customer exists.
	Delete(id string) error
}

type customerService struct {
	db        *gorm.DB
	directory directory.Client
	// seedFallback enables seeding the built-in sample set when the store
	// is empty and the remote fetch fails. Off by default so a failed fetch
	// degrades to an empty list.
	seedFallback bool
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(db *gorm.DB, dir directory.Client, seedFallback bool) CustomerService {
	return &customerService{db: db, directory: dir, seedFallback: seedFallback}
}

// sampleCustomers is the built-in fallback seed set, used only when
// seedFallback is enabled and the remote directory is unreachable.
var sampleCustomers = []models.Customer{
	{ID: "sample-1", Name: "Alice Johnson", Email: "alice@example.com", Role: models.RoleAdmin},
	{ID: "sample-2", Name: "Bob Smith", Email: "bob@example.com", Role: models.RoleManager},
	{ID: "sample-3", Name: "Carol Diaz", Email: "carol@example.com", Role: models.RoleManager},
}

func (s *customerService) Load(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, err
	}
	if len(customers) > 0 {
		// Cache hit: the local store is the source of truth, the remote
		// directory is never consulted again.
		return customers, nil
	}

	items, err := s.directory.ListCustomers(ctx)
	if err != nil {
		log.WithError(err).Warn("Remote directory fetch failed, serving empty customer set")
		if s.seedFallback {
			if seedErr := s.seed(ctx, sampleCustomers); seedErr != nil {
				return nil, seedErr
			}
			log.WithField("count", len(sampleCustomers)).Info("Seeded built-in sample customers")
			return append([]models.Customer(nil), sampleCustomers...), nil
		}
		return []models.Customer{}, err
	}

	// Role is written verbatim; normalization happens at comparison time.
	seeded := make([]models.Customer, 0, len(items))
	for _, item := range items {
		seeded = append(seeded, models.Customer{
			ID:    item.ID,
			Name:  item.Name,
			Email: item.Email,
			Role:  item.Role,
		})
	}
	if err := s.seed(ctx, seeded); err != nil {
		return nil, err
	}
	log.WithField("count", len(seeded)).Info("Seeded customer store from remote directory")
	return seeded, nil
}

// seed writes the given customers in a single transaction so a partial seed
// is never observable.
func (s *customerService) seed(ctx context.Context, customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range customers {
			if err := tx.Create(&customers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *customerService) Refresh(ctx context.Context) ([]models.Customer, error) {
	return s.Load(ctx)
}

func (s *customerService) Sections(ctx context.Context, tab models.Tab, query string) ([]models.Section, error) {
	customers, err := s.Load(ctx)
	if err != nil {
		return DeriveSections(customers, tab, query), err
	}
	return DeriveSections(customers, tab, query), nil
}

func (s *customerService) Create(form models.CustomerForm) (models.Customer, error) {
	payload, verr := ValidateCustomerForm(form)
	if verr != nil {
		return models.Customer{}, verr
	}

	customer := models.Customer{
		ID:    uuid.NewString(),
		Name:  payload.FirstName + " " + payload.LastName,
		Email: payload.Email,
		Role:  payload.Role,
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (s *customerService) Update(id string, form models.CustomerForm) (models.Customer, error) {
	payload, verr := ValidateCustomerForm(form)
	if verr != nil {
		return models.Customer{}, verr
	}

	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, models.ErrCustomerNotFound
		}
		return models.Customer{}, err
	}

	customer.Name = payload.FirstName + " " + payload.LastName
	customer.Email = payload.Email
	customer.Role = payload.Role
	if err := s.db.Save(&customer).Error; err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (s *customerService) Delete(id string) error {
	result := s.db.Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrCustomerNotFound
	}
	return nil
}
