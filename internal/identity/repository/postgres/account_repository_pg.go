package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/netpc/contacts-api/internal/identity/domain"
)

// DBTX is the subset of pgxpool.Pool these repositories need; pgxmock pools
// satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgAccountRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPgAccountRepository(db DBTX, logger *slog.Logger) *PgAccountRepository {
	return &PgAccountRepository{db: db, logger: logger.With("component", "account_repository_pg")}
}

func (r *PgAccountRepository) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.WarnContext(ctx, "Duplicate account email on insert")
			return domain.ErrEmailExists
		}
		r.logger.ErrorContext(ctx, "Error creating account", "error", err)
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}

func (r *PgAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a := &domain.Account{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE lower(email) = lower($1)`,
		email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		r.logger.ErrorContext(ctx, "Error getting account by email", "error", err)
		return nil, fmt.Errorf("getting account by email: %w", err)
	}
	return a, nil
}

func (r *PgAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	a := &domain.Account{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		r.logger.ErrorContext(ctx, "Error getting account by ID", "error", err, "account_id", id)
		return nil, fmt.Errorf("getting account by id: %w", err)
	}
	return a, nil
}
