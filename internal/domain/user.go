package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a platform user
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is a login method owned by a user. The ID is provider-qualified,
// e.g. "email:alice@example.com" for password logins.
type Credential struct {
	ID           string    `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	PasswordHash string    `json:"-"`
}

// UserCreate represents user registration data
type UserCreate struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UserLogin represents login credentials
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Create inserts the user and their credential in one transaction.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *User, cred *Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetCredential(ctx context.Context, credentialID string) (*Credential, error)
}
