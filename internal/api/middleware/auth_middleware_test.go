package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpc/contacts-api/internal/identity/app"
	"github.com/netpc/contacts-api/internal/identity/domain"
)

type stubValidator struct {
	claims app.Claims
	err    error
}

func (s stubValidator) ValidateAccessToken(tokenString string) (app.Claims, error) {
	return s.claims, s.err
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := app.Claims{AccountID: uuid.New(), Email: "jan@example.com"}

	protected := func(validator TokenValidator) http.Handler {
		mw := AuthMiddleware(validator, logger)
		return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := AccountFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, claims.Email, got.Email)
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("ValidBearerToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()

		protected(stubValidator{claims: claims}).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		protected(stubValidator{claims: claims}).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rr := httptest.NewRecorder()

		protected(stubValidator{claims: claims}).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rr := httptest.NewRecorder()

		protected(stubValidator{err: domain.ErrTokenInvalid}).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAccountFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := AccountFromContext(req.Context())

	assert.False(t, ok)
}
