package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/netpc/contacts-api/internal/api/middleware"
	contactsdomain "github.com/netpc/contacts-api/internal/contacts/domain"
	identitydomain "github.com/netpc/contacts-api/internal/identity/domain"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("Failed to write JSON response", "error", err)
		}
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithValidationError shapes validator failures into a 400 payload
// carrying one message per offending field.
func respondWithValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = validationMessage(fe)
	}
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "Validation failed",
		"details": details,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "password_complexity":
		return "must contain an uppercase letter, a lowercase letter, a digit and a special character"
	case "phone_chars":
		return "may contain only digits, spaces, hyphens, plus and parentheses"
	case "birth_date":
		return "must be in the past and no more than 150 years ago"
	default:
		return "is invalid"
	}
}

// respondWithDomainError maps business failures to their status codes and
// logs anything unexpected with request context before returning a generic
// 500 body.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var notFound *contactsdomain.NotFoundError
	if errors.As(err, &notFound) {
		respondWithError(w, http.StatusNotFound, notFound.Error())
		return
	}
	var duplicate *contactsdomain.DuplicateEmailError
	if errors.As(err, &duplicate) {
		respondWithError(w, http.StatusConflict, duplicate.Error())
		return
	}
	switch {
	case errors.Is(err, identitydomain.ErrEmailExists):
		respondWithError(w, http.StatusConflict, "Account with this email already exists.")
	case errors.Is(err, identitydomain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, identitydomain.ErrTokenInvalid):
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token.")
	default:
		caller := "Anonymous"
		if claims, ok := middleware.AccountFromContext(r.Context()); ok {
			caller = claims.Email
		}
		logger.ErrorContext(r.Context(), "Unhandled exception",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"user", caller,
			"remote_addr", r.RemoteAddr,
		)
		respondWithError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
