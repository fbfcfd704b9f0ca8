package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

type PgCategoryRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPgCategoryRepository(db DBTX, logger *slog.Logger) *PgCategoryRepository {
	return &PgCategoryRepository{db: db, logger: logger.With("component", "category_repository_pg")}
}

func (r *PgCategoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error checking category existence", "error", err, "category_id", id)
		return false, fmt.Errorf("checking category existence: %w", err)
	}
	return exists, nil
}

// GetAll returns every category with its subcategories attached, in id order.
func (r *PgCategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, category_name FROM categories ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing categories", "error", err)
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	index := make(map[int]int)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		c.Subcategories = []domain.Subcategory{}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	subRows, err := r.db.Query(ctx, `SELECT id, subcategory_name, category_id FROM subcategories ORDER BY id`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing subcategories", "error", err)
		return nil, fmt.Errorf("listing subcategories: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var s domain.Subcategory
		if err := subRows.Scan(&s.ID, &s.Name, &s.CategoryID); err != nil {
			return nil, fmt.Errorf("scanning subcategory row: %w", err)
		}
		if i, ok := index[s.CategoryID]; ok {
			categories[i].Subcategories = append(categories[i].Subcategories, s)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subcategory rows: %w", err)
	}
	return categories, nil
}
