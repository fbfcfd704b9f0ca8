package domain

// Contact represents a person stored in the contact book. PasswordHash is
// internal; it never leaves the application layer in a DTO.
type Contact struct {
	ID                int
	Name              string
	Surname           string
	Email             string
	PasswordHash      string
	PhoneNumber       string
	BirthDate         Date
	CategoryID        int
	SubcategoryID     *int
	CustomSubcategory *string

	// Resolved from the joined reference rows on reads; empty on writes.
	CategoryName    string
	SubcategoryName *string
}

// Category is static reference data ("Służbowy", "Prywatny", "Inny"),
// seeded at startup and never mutated through the API.
type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryId"`
}

// SortDirection controls the order of list results.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)
