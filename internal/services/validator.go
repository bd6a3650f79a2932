package services

import (
	"regexp"
	"strings"

	"github.com/customer-directory-api/internal/models"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

const maxNameLength = 50

// ValidateCustomerForm checks a create/edit form against the form rules in
// order and stops at the first violated rule. On success it returns the
// normalized payload: names trimmed, role title-cased.
func ValidateCustomerForm(form models.CustomerForm) (models.CustomerForm, *models.ValidationError) {
	firstName := strings.TrimSpace(form.FirstName)
	lastName := strings.TrimSpace(form.LastName)
	email := strings.TrimSpace(form.Email)

	if firstName == "" {
		return models.CustomerForm{}, models.NewValidationError("firstName", "First name cannot be empty.")
	}
	if lastName == "" {
		return models.CustomerForm{}, models.NewValidationError("lastName", "Last name cannot be empty.")
	}
	if !nameRegex.MatchString(firstName) {
		return models.CustomerForm{}, models.NewValidationError("firstName", "Name can only contain alphabets and spaces.")
	}
	if !nameRegex.MatchString(lastName) {
		return models.CustomerForm{}, models.NewValidationError("lastName", "Name can only contain alphabets and spaces.")
	}
	if len(firstName) > maxNameLength {
		return models.CustomerForm{}, models.NewValidationError("firstName", "Name must not exceed 50 characters.")
	}
	if len(lastName) > maxNameLength {
		return models.CustomerForm{}, models.NewValidationError("lastName", "Name must not exceed 50 characters.")
	}
	if email != "" && !emailRegex.MatchString(email) {
		return models.CustomerForm{}, models.NewValidationError("email", "Email is not valid.")
	}
	// The role picker constrains input in the app, but the API can be called
	// without it.
	if !models.KnownRole(form.Role) {
		return models.CustomerForm{}, models.NewValidationError("role", "Role must be either Admin or Manager.")
	}

	return models.CustomerForm{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      models.NormalizeRole(form.Role),
	}, nil
}
