package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpc/contacts-api/internal/identity/domain"
)

func setupAccountRepoTest(t *testing.T) (*PgAccountRepository, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewPgAccountRepository(mockPool, logger)
	return repo, mockPool
}

func TestPgAccountRepository_Create(t *testing.T) {
	repo, mockPool := setupAccountRepoTest(t)
	defer mockPool.Close()

	account := &domain.Account{
		ID:           uuid.New(),
		Email:        "jan@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mockPool.ExpectExec(`INSERT INTO accounts`).
			WithArgs(account.ID, account.Email, account.PasswordHash, account.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(context.Background(), account)

		require.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockPool.ExpectExec(`INSERT INTO accounts`).
			WithArgs(account.ID, account.Email, account.PasswordHash, account.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(context.Background(), account)

		require.ErrorIs(t, err, domain.ErrEmailExists)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("DBError", func(t *testing.T) {
		dbErr := errors.New("connection lost")
		mockPool.ExpectExec(`INSERT INTO accounts`).
			WithArgs(account.ID, account.Email, account.PasswordHash, account.CreatedAt).
			WillReturnError(dbErr)

		err := repo.Create(context.Background(), account)

		require.Error(t, err)
		assert.Contains(t, err.Error(), dbErr.Error())
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPgAccountRepository_GetByEmail(t *testing.T) {
	repo, mockPool := setupAccountRepoTest(t)
	defer mockPool.Close()

	accountID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		rows := mockPool.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(accountID, "jan@example.com", "hash", time.Now().UTC())

		mockPool.ExpectQuery(`SELECT id, email, password_hash, created_at FROM accounts WHERE lower\(email\) = lower\(\$1\)`).
			WithArgs("jan@example.com").
			WillReturnRows(rows)

		account, err := repo.GetByEmail(context.Background(), "jan@example.com")

		require.NoError(t, err)
		assert.Equal(t, accountID, account.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool.ExpectQuery(`SELECT id, email, password_hash, created_at FROM accounts WHERE lower\(email\) = lower\(\$1\)`).
			WithArgs("ghost@example.com").
			WillReturnError(pgx.ErrNoRows)

		account, err := repo.GetByEmail(context.Background(), "ghost@example.com")

		require.ErrorIs(t, err, domain.ErrAccountNotFound)
		assert.Nil(t, account)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPgRefreshTokenRepository(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewPgRefreshTokenRepository(mockPool, logger)

	token := &domain.RefreshToken{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		CreatedAt: time.Now().UTC(),
	}

	t.Run("Create", func(t *testing.T) {
		mockPool.ExpectExec(`INSERT INTO refresh_tokens`).
			WithArgs(token.ID, token.AccountID, token.ExpiresAt, token.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(context.Background(), token)

		require.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("GetByIDFound", func(t *testing.T) {
		rows := mockPool.NewRows([]string{"id", "account_id", "expires_at", "created_at"}).
			AddRow(token.ID, token.AccountID, token.ExpiresAt, token.CreatedAt)

		mockPool.ExpectQuery(`SELECT id, account_id, expires_at, created_at FROM refresh_tokens WHERE id = \$1`).
			WithArgs(token.ID).
			WillReturnRows(rows)

		stored, err := repo.GetByID(context.Background(), token.ID)

		require.NoError(t, err)
		assert.Equal(t, token.AccountID, stored.AccountID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("GetByIDUnknown", func(t *testing.T) {
		unknown := uuid.New()
		mockPool.ExpectQuery(`SELECT id, account_id, expires_at, created_at FROM refresh_tokens WHERE id = \$1`).
			WithArgs(unknown).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(context.Background(), unknown)

		require.ErrorIs(t, err, domain.ErrTokenInvalid)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		mockPool.ExpectExec(`DELETE FROM refresh_tokens WHERE id = \$1`).
			WithArgs(token.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := repo.Delete(context.Background(), token.ID)

		require.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("DeleteByAccountID", func(t *testing.T) {
		mockPool.ExpectExec(`DELETE FROM refresh_tokens WHERE account_id = \$1`).
			WithArgs(token.AccountID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		err := repo.DeleteByAccountID(context.Background(), token.AccountID)

		require.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
