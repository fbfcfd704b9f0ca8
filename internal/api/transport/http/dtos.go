package http

import (
	"github.com/netpc/contacts-api/internal/contacts/domain"
)

// --- Contact DTOs ---

// CreateContactRequestDTO is the body of POST /api/contact.
type CreateContactRequestDTO struct {
	Name              string      `json:"name" validate:"required,min=1,max=100"`
	Surname           string      `json:"surname" validate:"required,min=1,max=100"`
	Email             string      `json:"email" validate:"required,email,max=255"`
	Password          string      `json:"password" validate:"required,min=8,max=100,password_complexity"`
	PhoneNumber       string      `json:"phoneNumber" validate:"required,min=9,max=20,phone_chars"`
	BirthDate         domain.Date `json:"birthDate" validate:"birth_date"`
	CategoryID        int         `json:"categoryId" validate:"required,gt=0"`
	SubcategoryID     *int        `json:"subcategoryId" validate:"omitempty,gt=0"`
	CustomSubcategory *string     `json:"customSubcategory" validate:"omitempty,min=1,max=100"`
}

// UpdateContactRequestDTO is the body of PATCH /api/contact/{id}.
// Password is optional; empty or absent leaves the stored hash unchanged.
type UpdateContactRequestDTO struct {
	Name              string      `json:"name" validate:"required,min=1,max=100"`
	Surname           string      `json:"surname" validate:"required,min=1,max=100"`
	Email             string      `json:"email" validate:"required,email,max=255"`
	Password          string      `json:"password" validate:"omitempty,min=8,max=100,password_complexity"`
	PhoneNumber       string      `json:"phoneNumber" validate:"required,min=9,max=20,phone_chars"`
	BirthDate         domain.Date `json:"birthDate" validate:"birth_date"`
	CategoryID        int         `json:"categoryId" validate:"required,gt=0"`
	SubcategoryID     *int        `json:"subcategoryId" validate:"omitempty,gt=0"`
	CustomSubcategory *string     `json:"customSubcategory" validate:"omitempty,min=1,max=100"`
}

// GetAllContactsQueryDTO binds the query string of GET /api/contact.
// SortBy and SortDirection are lowercased before validation.
type GetAllContactsQueryDTO struct {
	SearchPhrase  string `validate:"-"`
	PageNumber    int    `validate:"required,gte=1"`
	PageSize      int    `validate:"required,oneof=5 10 15 30"`
	SortBy        string `validate:"omitempty,oneof=name surname category"`
	SortDirection string `validate:"omitempty,oneof=asc desc"`
}

// CreateContactResponseDTO carries the generated id back to the client.
type CreateContactResponseDTO struct {
	ID int `json:"id"`
}

// --- Identity DTOs ---

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100,password_complexity"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequestDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenResponseDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}
