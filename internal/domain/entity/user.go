// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is the currency code assigned to new accounts.
const DefaultCurrency = "BRL"

// User represents an account holder of the expense tracker.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Currency     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Currency:     DefaultCurrency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
