package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customer-directory-api/internal/models"
)

func TestDeriveSectionsGroupsByFirstLetter(t *testing.T) {
	sections := DeriveSections([]models.Customer{
		{ID: "1", Name: "bob", Role: "Admin"},
	}, models.TabAll, "")

	require.Len(t, sections, 1)
	assert.Equal(t, "B", sections[0].Title)
	require.Len(t, sections[0].Items, 1)
	assert.Equal(t, "bob", sections[0].Items[0].Name)
}

func TestDeriveSectionsOrdering(t *testing.T) {
	sections := DeriveSections([]models.Customer{
		{ID: "1", Name: "Bob", Role: "Admin"},
		{ID: "2", Name: "alice", Role: "Manager"},
		{ID: "3", Name: "Amanda", Role: "Admin"},
	}, models.TabAll, "")

	require.Len(t, sections, 2)
	assert.Equal(t, "A", sections[0].Title)
	assert.Equal(t, "B", sections[1].Title)

	// Locale-aware ordering: lowercase "alice" sorts before "Amanda"
	require.Len(t, sections[0].Items, 2)
	assert.Equal(t, "alice", sections[0].Items[0].Name)
	assert.Equal(t, "Amanda", sections[0].Items[1].Name)
}

func TestDeriveSectionsTabFilter(t *testing.T) {
	customers := []models.Customer{
		{ID: "1", Name: "Ann", Role: "ADMIN"},
		{ID: "2", Name: "Ben", Role: "manager"},
		{ID: "3", Name: "Cal", Role: "intern"},
	}

	t.Run("all tab keeps every role", func(t *testing.T) {
		sections := DeriveSections(customers, models.TabAll, "")
		assert.Len(t, sections, 3)
	})

	t.Run("role tab matches regardless of source casing", func(t *testing.T) {
		sections := DeriveSections(customers, models.TabAdmin, "")
		require.Len(t, sections, 1)
		assert.Equal(t, "Ann", sections[0].Items[0].Name)
	})

	t.Run("unrecognized role matches no role tab", func(t *testing.T) {
		admins := DeriveSections(customers, models.TabAdmin, "")
		managers := DeriveSections(customers, models.TabManager, "")
		for _, sections := range [][]models.Section{admins, managers} {
			for _, section := range sections {
				for _, item := range section.Items {
					assert.NotEqual(t, "Cal", item.Name)
				}
			}
		}
	})
}

func TestDeriveSectionsSearchFilter(t *testing.T) {
	customers := []models.Customer{
		{ID: "1", Name: "Hazel Nutt", Role: "ADMIN"},
		{ID: "2", Name: "Ben Dover", Role: "Manager"},
	}

	t.Run("matches name case-insensitively", func(t *testing.T) {
		sections := DeriveSections(customers, models.TabAll, "zel")
		require.Len(t, sections, 1)
		assert.Equal(t, "Hazel Nutt", sections[0].Items[0].Name)
	})

	t.Run("matches normalized role case-insensitively", func(t *testing.T) {
		sections := DeriveSections(customers, models.TabAll, "admin")
		require.Len(t, sections, 1)
		assert.Equal(t, "Hazel Nutt", sections[0].Items[0].Name)
	})

	t.Run("whitespace query keeps everyone", func(t *testing.T) {
		sections := DeriveSections(customers, models.TabAll, "   ")
		total := 0
		for _, section := range sections {
			total += len(section.Items)
		}
		assert.Equal(t, 2, total)
	})

	t.Run("no match yields no sections", func(t *testing.T) {
		sections := DeriveSections(customers, models.TabAll, "zzz")
		assert.Empty(t, sections)
	})
}

func TestDeriveSectionsEmptyNameFallbackBucket(t *testing.T) {
	sections := DeriveSections([]models.Customer{
		{ID: "1", Name: "", Role: "Admin"},
		{ID: "2", Name: "Ann", Role: "Admin"},
	}, models.TabAll, "")

	require.Len(t, sections, 2)
	// The fallback bucket sorts ahead of the letter groups
	assert.Equal(t, "#", sections[0].Title)
	assert.Equal(t, "A", sections[1].Title)
}

func TestDeriveSectionsIsPure(t *testing.T) {
	customers := []models.Customer{
		{ID: "1", Name: "Zoe", Role: "Admin"},
		{ID: "2", Name: "Amy", Role: "Admin"},
	}
	DeriveSections(customers, models.TabAll, "")

	// Input order untouched
	assert.Equal(t, "Zoe", customers[0].Name)
	assert.Equal(t, "Amy", customers[1].Name)
}
