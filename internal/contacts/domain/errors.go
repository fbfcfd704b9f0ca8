package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource was not found. Typed
// instances carry the resource name and identifier for the 404 payload.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicateEmail indicates the email uniqueness rule was violated.
var ErrDuplicateEmail = errors.New("duplicate email")

// NotFoundError identifies which resource was missing.
type NotFoundError struct {
	Resource   string
	Identifier string
}

func NewNotFoundError(resource, identifier string) *NotFoundError {
	return &NotFoundError{Resource: resource, Identifier: identifier}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id: %s doesn't exist", e.Resource, e.Identifier)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateEmailError reports a uniqueness violation for the given address,
// whether detected by the pre-insert check or by the store's unique index.
type DuplicateEmailError struct {
	Email string
}

func NewDuplicateEmailError(email string) *DuplicateEmailError {
	return &DuplicateEmailError{Email: email}
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("Contact with email '%s' already exists.", e.Email)
}

func (e *DuplicateEmailError) Is(target error) bool {
	return target == ErrDuplicateEmail
}
