package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailExists indicates the account email is already registered.
	ErrEmailExists = errors.New("email already exists")
	// ErrTokenInvalid indicates a refresh token that is unknown, expired or
	// already rotated.
	ErrTokenInvalid = errors.New("token is invalid or expired")
	// ErrAccountNotFound indicates a lookup for a nonexistent account.
	ErrAccountNotFound = errors.New("account not found")
)

// Account is an API user able to obtain bearer tokens. Distinct from Contact:
// contacts are the managed data, accounts are who manages them.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RefreshToken is the stored counterpart of an opaque refresh token handed to
// the client. Presence plus ExpiresAt decide validity; rotation deletes the
// row and issues a new one.
type RefreshToken struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}
