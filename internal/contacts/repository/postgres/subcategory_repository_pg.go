package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

type PgSubcategoryRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPgSubcategoryRepository(db DBTX, logger *slog.Logger) *PgSubcategoryRepository {
	return &PgSubcategoryRepository{db: db, logger: logger.With("component", "subcategory_repository_pg")}
}

// ExistsForCategory validates both that the subcategory exists and that it
// belongs to the given category.
func (r *PgSubcategoryRepository) ExistsForCategory(ctx context.Context, subcategoryID, categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subcategories WHERE id = $1 AND category_id = $2)`,
		subcategoryID, categoryID,
	).Scan(&exists)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error checking subcategory existence", "error", err,
			"subcategory_id", subcategoryID, "category_id", categoryID)
		return false, fmt.Errorf("checking subcategory existence: %w", err)
	}
	return exists, nil
}

func (r *PgSubcategoryRepository) ListByCategoryID(ctx context.Context, categoryID int) ([]domain.Subcategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, subcategory_name, category_id FROM subcategories WHERE category_id = $1 ORDER BY id`,
		categoryID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing subcategories by category", "error", err, "category_id", categoryID)
		return nil, fmt.Errorf("listing subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []domain.Subcategory
	for rows.Next() {
		var s domain.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID); err != nil {
			return nil, fmt.Errorf("scanning subcategory row: %w", err)
		}
		subcategories = append(subcategories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subcategory rows: %w", err)
	}
	return subcategories, nil
}
