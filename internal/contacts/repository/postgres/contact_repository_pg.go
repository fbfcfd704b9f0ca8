package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

// Sortable columns exposed to the list query, keyed by the values the
// validation layer accepts.
var sortColumns = map[string]string{
	"name":     "c.name",
	"surname":  "c.surname",
	"category": "cat.category_name",
}

const contactSelect = `
	SELECT c.id, c.name, c.surname, c.email, c.password_hash, c.phone_number,
	       c.birth_date, c.category_id, c.subcategory_id, c.custom_subcategory,
	       cat.category_name, s.subcategory_name
	FROM contacts c
	JOIN categories cat ON cat.id = c.category_id
	LEFT JOIN subcategories s ON s.id = c.subcategory_id
`

type PgContactRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPgContactRepository(db DBTX, logger *slog.Logger) *PgContactRepository {
	return &PgContactRepository{db: db, logger: logger.With("component", "contact_repository_pg")}
}

func (r *PgContactRepository) Create(ctx context.Context, ct *domain.Contact) (int, error) {
	query := `
		INSERT INTO contacts (name, surname, email, password_hash, phone_number, birth_date, category_id, subcategory_id, custom_subcategory)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(ctx, query,
		ct.Name, ct.Surname, ct.Email, ct.PasswordHash, ct.PhoneNumber,
		ct.BirthDate.Time, ct.CategoryID, ct.SubcategoryID, ct.CustomSubcategory,
	).Scan(&id)
	if err != nil {
		// Two concurrent creates can both pass the application-level
		// uniqueness check; the unique index on lower(email) is the
		// authoritative guard.
		if isUniqueViolation(err) {
			r.logger.WarnContext(ctx, "Duplicate email on insert", "email", ct.Email)
			return 0, domain.NewDuplicateEmailError(ct.Email)
		}
		r.logger.ErrorContext(ctx, "Error creating contact", "error", err, "email", ct.Email)
		return 0, fmt.Errorf("creating contact: %w", err)
	}
	return id, nil
}

func (r *PgContactRepository) GetByID(ctx context.Context, id int) (*domain.Contact, error) {
	row := r.db.QueryRow(ctx, contactSelect+` WHERE c.id = $1`, id)
	ct, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Contact not found", "contact_id", id)
			return nil, domain.NewNotFoundError("Contact", strconv.Itoa(id))
		}
		r.logger.ErrorContext(ctx, "Error getting contact by ID", "error", err, "contact_id", id)
		return nil, fmt.Errorf("getting contact by id: %w", err)
	}
	return ct, nil
}

func (r *PgContactRepository) GetByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	row := r.db.QueryRow(ctx, contactSelect+` WHERE lower(c.email) = lower($1)`, email)
	ct, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Contact", email)
		}
		r.logger.ErrorContext(ctx, "Error getting contact by email", "error", err)
		return nil, fmt.Errorf("getting contact by email: %w", err)
	}
	return ct, nil
}

func (r *PgContactRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contacts WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error checking email existence", "error", err)
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

func (r *PgContactRepository) Update(ctx context.Context, ct *domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, surname = $2, email = $3, password_hash = $4, phone_number = $5,
		    birth_date = $6, category_id = $7, subcategory_id = $8, custom_subcategory = $9
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query,
		ct.Name, ct.Surname, ct.Email, ct.PasswordHash, ct.PhoneNumber,
		ct.BirthDate.Time, ct.CategoryID, ct.SubcategoryID, ct.CustomSubcategory,
		ct.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.WarnContext(ctx, "Duplicate email on update", "email", ct.Email, "contact_id", ct.ID)
			return domain.NewDuplicateEmailError(ct.Email)
		}
		r.logger.ErrorContext(ctx, "Error updating contact", "error", err, "contact_id", ct.ID)
		return fmt.Errorf("updating contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Contact not found for update", "contact_id", ct.ID)
		return domain.NewNotFoundError("Contact", strconv.Itoa(ct.ID))
	}
	return nil
}

func (r *PgContactRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error deleting contact", "error", err, "contact_id", id)
		return fmt.Errorf("deleting contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Contact not found for delete", "contact_id", id)
		return domain.NewNotFoundError("Contact", strconv.Itoa(id))
	}
	return nil
}

func (r *PgContactRepository) ListMatching(ctx context.Context, q domain.ContactQuery) ([]*domain.Contact, int, error) {
	where := `WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.surname ILIKE '%' || $1 || '%' OR c.email ILIKE '%' || $1 || '%')`

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM contacts c JOIN categories cat ON cat.id = c.category_id ` + where
	if err := r.db.QueryRow(ctx, countQuery, q.SearchPhrase).Scan(&totalCount); err != nil {
		r.logger.ErrorContext(ctx, "Error counting contacts", "error", err)
		return nil, 0, fmt.Errorf("counting contacts: %w", err)
	}

	// id ASC keeps the page order stable when the sort column ties.
	orderBy := "c.id ASC"
	if col, ok := sortColumns[q.SortBy]; ok {
		dir := "ASC"
		if q.SortDirection == domain.SortDescending {
			dir = "DESC"
		}
		orderBy = fmt.Sprintf("%s %s, c.id ASC", col, dir)
	}

	pageQuery := fmt.Sprintf("%s %s ORDER BY %s LIMIT $2 OFFSET $3", contactSelect, where, orderBy)
	rows, err := r.db.Query(ctx, pageQuery, q.SearchPhrase, q.PageSize, (q.PageNumber-1)*q.PageSize)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing contacts", "error", err)
		return nil, 0, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		ct, err := scanContact(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Error scanning contact row", "error", err)
			return nil, 0, fmt.Errorf("scanning contact row: %w", err)
		}
		contacts = append(contacts, ct)
	}
	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating contact rows", "error", err)
		return nil, 0, fmt.Errorf("iterating contact rows: %w", err)
	}
	return contacts, totalCount, nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	ct := &domain.Contact{}
	err := row.Scan(
		&ct.ID, &ct.Name, &ct.Surname, &ct.Email, &ct.PasswordHash, &ct.PhoneNumber,
		&ct.BirthDate.Time, &ct.CategoryID, &ct.SubcategoryID, &ct.CustomSubcategory,
		&ct.CategoryName, &ct.SubcategoryName,
	)
	if err != nil {
		return nil, err
	}
	return ct, nil
}
