package app

import (
	"math"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

// ContactDto is the detail view of a contact. It deliberately has no field
// for the password hash.
type ContactDto struct {
	ID                int         `json:"id"`
	Name              string      `json:"name"`
	Surname           string      `json:"surname"`
	Email             string      `json:"email"`
	PhoneNumber       string      `json:"phoneNumber"`
	BirthDate         domain.Date `json:"birthDate"`
	CategoryID        int         `json:"categoryId"`
	CategoryName      string      `json:"categoryName"`
	SubcategoryID     *int        `json:"subcategoryId"`
	SubcategoryName   *string     `json:"subcategoryName"`
	CustomSubcategory *string     `json:"customSubcategory"`
}

// BasicContactDto is the list-row view of a contact.
type BasicContactDto struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Category    string `json:"category"`
}

// PagedResult wraps one page of items with pagination metadata.
type PagedResult[T any] struct {
	Items           []T `json:"items"`
	TotalPages      int `json:"totalPages"`
	TotalItemsCount int `json:"totalItemsCount"`
	ItemsFrom       int `json:"itemsFrom"`
	ItemsTo         int `json:"itemsTo"`
}

// NewPagedResult computes the pagination metadata. ItemsTo is
// ItemsFrom+pageSize-1 without clamping to the total count; the upstream
// clients depend on that exact value, so it is kept as-is even on a short
// last page.
func NewPagedResult[T any](items []T, totalCount, pageSize, pageNumber int) PagedResult[T] {
	itemsFrom := pageSize*(pageNumber-1) + 1
	return PagedResult[T]{
		Items:           items,
		TotalPages:      int(math.Ceil(float64(totalCount) / float64(pageSize))),
		TotalItemsCount: totalCount,
		ItemsFrom:       itemsFrom,
		ItemsTo:         itemsFrom + pageSize - 1,
	}
}

func toContactDto(c *domain.Contact) ContactDto {
	return ContactDto{
		ID:                c.ID,
		Name:              c.Name,
		Surname:           c.Surname,
		Email:             c.Email,
		PhoneNumber:       c.PhoneNumber,
		BirthDate:         c.BirthDate,
		CategoryID:        c.CategoryID,
		CategoryName:      c.CategoryName,
		SubcategoryID:     c.SubcategoryID,
		SubcategoryName:   c.SubcategoryName,
		CustomSubcategory: c.CustomSubcategory,
	}
}

func toBasicContactDto(c *domain.Contact) BasicContactDto {
	return BasicContactDto{
		ID:          c.ID,
		Name:        c.Name,
		Surname:     c.Surname,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Category:    c.CategoryName,
	}
}
