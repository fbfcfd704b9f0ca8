package domain

import "context"

// ContactQuery carries the list parameters after validation.
type ContactQuery struct {
	SearchPhrase  string
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection SortDirection
}

// ContactRepository defines the interface for managing Contact data.
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) (int, error)
	GetByID(ctx context.Context, id int) (*Contact, error)
	GetByEmail(ctx context.Context, email string) (*Contact, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id int) error
	// ListMatching returns the requested page plus the total count of
	// contacts matching the search phrase.
	ListMatching(ctx context.Context, query ContactQuery) ([]*Contact, int, error)
}

// CategoryRepository provides read access to the category dictionary.
type CategoryRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	GetAll(ctx context.Context) ([]Category, error)
}

// SubcategoryRepository provides read access to the subcategory dictionary.
type SubcategoryRepository interface {
	// ExistsForCategory checks both that the subcategory exists and that it
	// belongs to the given category.
	ExistsForCategory(ctx context.Context, subcategoryID, categoryID int) (bool, error)
	ListByCategoryID(ctx context.Context, categoryID int) ([]Subcategory, error)
}

// PasswordHasher abstracts the password hashing primitive so the application
// layer never touches a concrete KDF.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
