package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

// NATS subjects for contact lifecycle events.
const (
	SubjectContactCreated = "contact.created"
	SubjectContactUpdated = "contact.updated"
	SubjectContactDeleted = "contact.deleted"
)

// EventPublisher publishes domain events. Satisfied by messagebroker.NatsClient.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// CreateContactInput carries the fields of a create request after field-level
// validation has passed.
type CreateContactInput struct {
	Name              string
	Surname           string
	Email             string
	Password          string
	PhoneNumber       string
	BirthDate         domain.Date
	CategoryID        int
	SubcategoryID     *int
	CustomSubcategory *string
}

// UpdateContactInput mirrors CreateContactInput; Password is optional and an
// empty value leaves the stored hash untouched.
type UpdateContactInput struct {
	ID                int
	Name              string
	Surname           string
	Email             string
	Password          string
	PhoneNumber       string
	BirthDate         domain.Date
	CategoryID        int
	SubcategoryID     *int
	CustomSubcategory *string
}

// ListContactsInput carries the validated list parameters.
type ListContactsInput struct {
	SearchPhrase  string
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection domain.SortDirection
}

// Application provides the contact management use cases.
type Application struct {
	contactRepo     domain.ContactRepository
	categoryRepo    domain.CategoryRepository
	subcategoryRepo domain.SubcategoryRepository
	hasher          domain.PasswordHasher
	publisher       EventPublisher
	logger          *slog.Logger
}

// NewApplication creates a new Application instance. publisher may be nil
// when no broker is configured; events are then skipped.
func NewApplication(
	contactRepo domain.ContactRepository,
	categoryRepo domain.CategoryRepository,
	subcategoryRepo domain.SubcategoryRepository,
	hasher domain.PasswordHasher,
	publisher EventPublisher,
	logger *slog.Logger,
) *Application {
	return &Application{
		contactRepo:     contactRepo,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		hasher:          hasher,
		publisher:       publisher,
		logger:          logger,
	}
}

// CreateContact checks email uniqueness and referential existence, hashes the
// password and persists a new contact. Returns the generated id.
func (a *Application) CreateContact(ctx context.Context, in CreateContactInput) (int, error) {
	a.logger.InfoContext(ctx, "Creating contact", "email", in.Email)

	exists, err := a.contactRepo.EmailExists(ctx, in.Email)
	if err != nil {
		a.logger.ErrorContext(ctx, "Error checking email existence", "error", err, "email", in.Email)
		return 0, err
	}
	if exists {
		a.logger.WarnContext(ctx, "Email already exists", "email", in.Email)
		return 0, domain.NewDuplicateEmailError(in.Email)
	}

	if err := a.checkCategoryAndSubcategory(ctx, in.CategoryID, in.SubcategoryID); err != nil {
		return 0, err
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return 0, err
	}

	contact := &domain.Contact{
		Name:              in.Name,
		Surname:           in.Surname,
		Email:             in.Email,
		PasswordHash:      hash,
		PhoneNumber:       in.PhoneNumber,
		BirthDate:         in.BirthDate,
		CategoryID:        in.CategoryID,
		SubcategoryID:     in.SubcategoryID,
		CustomSubcategory: in.CustomSubcategory,
	}

	id, err := a.contactRepo.Create(ctx, contact)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to create contact", "error", err, "email", in.Email)
		return 0, err
	}

	a.logger.InfoContext(ctx, "Contact created", "contact_id", id)
	a.publishEvent(ctx, SubjectContactCreated, id, in.Email)
	return id, nil
}

// UpdateContact applies all scalar fields to an existing contact. The email
// uniqueness check only runs when the address actually changes; the password
// hash is only recomputed when a non-empty password is submitted.
func (a *Application) UpdateContact(ctx context.Context, in UpdateContactInput) error {
	a.logger.InfoContext(ctx, "Updating contact", "contact_id", in.ID)

	contact, err := a.contactRepo.GetByID(ctx, in.ID)
	if err != nil {
		return err
	}

	if contact.Email != in.Email {
		exists, err := a.contactRepo.EmailExists(ctx, in.Email)
		if err != nil {
			a.logger.ErrorContext(ctx, "Error checking email existence", "error", err, "email", in.Email)
			return err
		}
		if exists {
			a.logger.WarnContext(ctx, "Email already exists", "email", in.Email)
			return domain.NewDuplicateEmailError(in.Email)
		}
	}

	if err := a.checkCategoryAndSubcategory(ctx, in.CategoryID, in.SubcategoryID); err != nil {
		return err
	}

	contact.Name = in.Name
	contact.Surname = in.Surname
	contact.Email = in.Email
	contact.PhoneNumber = in.PhoneNumber
	contact.BirthDate = in.BirthDate
	contact.CategoryID = in.CategoryID
	contact.SubcategoryID = in.SubcategoryID
	contact.CustomSubcategory = in.CustomSubcategory

	if in.Password != "" {
		hash, err := a.hasher.Hash(in.Password)
		if err != nil {
			a.logger.ErrorContext(ctx, "Failed to hash password", "error", err, "contact_id", in.ID)
			return err
		}
		contact.PasswordHash = hash
		a.logger.InfoContext(ctx, "Password updated for contact", "contact_id", in.ID)
	}

	if err := a.contactRepo.Update(ctx, contact); err != nil {
		a.logger.ErrorContext(ctx, "Failed to update contact", "error", err, "contact_id", in.ID)
		return err
	}

	a.logger.InfoContext(ctx, "Contact updated", "contact_id", in.ID)
	a.publishEvent(ctx, SubjectContactUpdated, in.ID, in.Email)
	return nil
}

// DeleteContact removes a contact by id.
func (a *Application) DeleteContact(ctx context.Context, id int) error {
	a.logger.InfoContext(ctx, "Deleting contact", "contact_id", id)

	contact, err := a.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.contactRepo.Delete(ctx, contact.ID); err != nil {
		a.logger.ErrorContext(ctx, "Failed to delete contact", "error", err, "contact_id", id)
		return err
	}

	a.logger.InfoContext(ctx, "Contact deleted", "contact_id", id)
	a.publishEvent(ctx, SubjectContactDeleted, id, contact.Email)
	return nil
}

// GetContactByID returns the detail DTO with resolved category and
// subcategory names. The password hash never reaches the DTO.
func (a *Application) GetContactByID(ctx context.Context, id int) (ContactDto, error) {
	contact, err := a.contactRepo.GetByID(ctx, id)
	if err != nil {
		return ContactDto{}, err
	}
	return toContactDto(contact), nil
}

// GetAllContacts returns one page of contacts matching the query.
func (a *Application) GetAllContacts(ctx context.Context, in ListContactsInput) (PagedResult[BasicContactDto], error) {
	a.logger.InfoContext(ctx, "Retrieving contacts",
		"page_number", in.PageNumber,
		"page_size", in.PageSize,
		"search_phrase", in.SearchPhrase,
		"sort_by", in.SortBy,
		"sort_direction", in.SortDirection,
	)

	contacts, totalCount, err := a.contactRepo.ListMatching(ctx, domain.ContactQuery{
		SearchPhrase:  in.SearchPhrase,
		PageNumber:    in.PageNumber,
		PageSize:      in.PageSize,
		SortBy:        in.SortBy,
		SortDirection: in.SortDirection,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to list contacts", "error", err)
		return PagedResult[BasicContactDto]{}, err
	}

	dtos := make([]BasicContactDto, 0, len(contacts))
	for _, c := range contacts {
		dtos = append(dtos, toBasicContactDto(c))
	}

	return NewPagedResult(dtos, totalCount, in.PageSize, in.PageNumber), nil
}

// ListCategories returns the category dictionary with subcategories, used by
// the SPA to populate its select inputs.
func (a *Application) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return a.categoryRepo.GetAll(ctx)
}

func (a *Application) checkCategoryAndSubcategory(ctx context.Context, categoryID int, subcategoryID *int) error {
	categoryExists, err := a.categoryRepo.Exists(ctx, categoryID)
	if err != nil {
		a.logger.ErrorContext(ctx, "Error checking category existence", "error", err, "category_id", categoryID)
		return err
	}
	if !categoryExists {
		a.logger.WarnContext(ctx, "Category not found", "category_id", categoryID)
		return domain.NewNotFoundError("CategoryId", strconv.Itoa(categoryID))
	}

	if subcategoryID != nil {
		valid, err := a.subcategoryRepo.ExistsForCategory(ctx, *subcategoryID, categoryID)
		if err != nil {
			a.logger.ErrorContext(ctx, "Error checking subcategory existence", "error", err, "subcategory_id", *subcategoryID)
			return err
		}
		if !valid {
			a.logger.WarnContext(ctx, "Subcategory not found or doesn't belong to category",
				"subcategory_id", *subcategoryID, "category_id", categoryID)
			return domain.NewNotFoundError("SubcategoryId", strconv.Itoa(*subcategoryID))
		}
	}
	return nil
}

// publishEvent emits a lifecycle event; failures are logged and swallowed so
// the broker never affects the request outcome.
func (a *Application) publishEvent(ctx context.Context, subject string, contactID int, email string) {
	if a.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"contact_id": contactID,
		"email":      email,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to marshal event payload", "error", err, "subject", subject)
		return
	}
	if err := a.publisher.Publish(ctx, subject, payload); err != nil {
		a.logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject, "contact_id", contactID)
	}
}
