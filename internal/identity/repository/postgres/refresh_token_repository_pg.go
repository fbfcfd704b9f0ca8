package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/netpc/contacts-api/internal/identity/domain"
)

type PgRefreshTokenRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPgRefreshTokenRepository(db DBTX, logger *slog.Logger) *PgRefreshTokenRepository {
	return &PgRefreshTokenRepository{db: db, logger: logger.With("component", "refresh_token_repository_pg")}
}

func (r *PgRefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_tokens (id, account_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.AccountID, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error storing refresh token", "error", err, "account_id", t.AccountID)
		return fmt.Errorf("storing refresh token: %w", err)
	}
	return nil
}

func (r *PgRefreshTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RefreshToken, error) {
	t := &domain.RefreshToken{}
	err := r.db.QueryRow(ctx,
		`SELECT id, account_id, expires_at, created_at FROM refresh_tokens WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.AccountID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenInvalid
		}
		r.logger.ErrorContext(ctx, "Error getting refresh token", "error", err)
		return nil, fmt.Errorf("getting refresh token: %w", err)
	}
	return t, nil
}

func (r *PgRefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error deleting refresh token", "error", err)
		return fmt.Errorf("deleting refresh token: %w", err)
	}
	return nil
}

func (r *PgRefreshTokenRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE account_id = $1`, accountID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error deleting refresh tokens for account", "error", err, "account_id", accountID)
		return fmt.Errorf("deleting refresh tokens for account: %w", err)
	}
	return nil
}
