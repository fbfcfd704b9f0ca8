package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/netpc/contacts-api/internal/identity/app"
)

// AuthHandler handles account registration and token issuance.
type AuthHandler struct {
	auth     *app.AuthService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *app.AuthService, logger *slog.Logger, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		logger:   logger,
		validate: validate,
	}
}

// RegisterRoutes sets up the identity routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/identity/register", h.Register)
	r.Post("/identity/login", h.Login)
	r.Post("/identity/refresh", h.Refresh)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithValidationError(w, err)
		return
	}

	account, err := h.auth.Register(ctx, reqDTO.Email, reqDTO.Password)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	h.logger.InfoContext(ctx, "Account registered", "account_id", account.ID)
	respondWithJSON(w, http.StatusCreated, map[string]string{"id": account.ID.String()})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithValidationError(w, err)
		return
	}

	tokens, err := h.auth.Login(ctx, reqDTO.Email, reqDTO.Password)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TokenResponseDTO{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO RefreshRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithValidationError(w, err)
		return
	}

	tokens, err := h.auth.Refresh(ctx, reqDTO.RefreshToken)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TokenResponseDTO{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}
