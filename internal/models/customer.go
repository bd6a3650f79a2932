package models

import "strings"

// Recognized customer roles. Remote data may arrive in arbitrary casing;
// NormalizeRole brings a value into this domain before any comparison.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
)

// Tab is the coarse role filter shown above the customer list.
type Tab string

const (
	TabAll     Tab = "All"
	TabAdmin   Tab = "Admin"
	TabManager Tab = "Manager"
)

// Customer represents one customer record in the local store.
// IDs are assigned by the remote directory when seeded from it, or generated
// locally for customers created through the form.
type Customer struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Section is one alphabetical group of the derived customer list.
type Section struct {
	Title string     `json:"title"`
	Items []Customer `json:"items"`
}

// CustomerForm is the payload of the create/edit customer form.
type CustomerForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// NormalizeRole maps a role value of arbitrary casing ("ADMIN", "manager")
// onto its title-cased form. Unrecognized values are returned trimmed but
// otherwise untouched, so they never compare equal to a known role.
func NormalizeRole(role string) string {
	trimmed := strings.TrimSpace(role)
	switch strings.ToLower(trimmed) {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	default:
		return trimmed
	}
}

// KnownRole reports whether role normalizes to a recognized value.
func KnownRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}

// ParseTab maps a query-string tab value onto a Tab. Anything unrecognized
// falls back to TabAll so a stale client never gets an error for a filter.
func ParseTab(value string) Tab {
	switch NormalizeRole(value) {
	case RoleAdmin:
		return TabAdmin
	case RoleManager:
		return TabManager
	default:
		return TabAll
	}
}
