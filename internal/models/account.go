package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is a staff login account for the API, not a customer record.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'admin'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetPassword hashes and stores the given plain-text password.
func (a *Account) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
