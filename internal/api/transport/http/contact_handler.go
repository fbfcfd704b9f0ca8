package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/netpc/contacts-api/internal/contacts/app"
	"github.com/netpc/contacts-api/internal/contacts/domain"
)

// ContactHandler handles HTTP requests for contacts and categories.
type ContactHandler struct {
	app      *app.Application
	logger   *slog.Logger
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(application *app.Application, logger *slog.Logger, validate *validator.Validate) *ContactHandler {
	return &ContactHandler{
		app:      application,
		logger:   logger,
		validate: validate,
	}
}

// RegisterQueryRoutes sets up the read-only contact and category routes.
func (h *ContactHandler) RegisterQueryRoutes(r chi.Router) {
	r.Get("/contact", h.GetAllContacts)
	r.Get("/contact/{id}", h.GetContact)
	r.Get("/category", h.ListCategories)
}

// RegisterCommandRoutes sets up the mutating contact routes.
func (h *ContactHandler) RegisterCommandRoutes(r chi.Router) {
	r.Post("/contact", h.CreateContact)
	r.Patch("/contact/{id}", h.UpdateContact)
	r.Delete("/contact/{id}", h.DeleteContact)
}

func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO CreateContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithValidationError(w, err)
		return
	}

	id, err := h.app.CreateContact(ctx, app.CreateContactInput{
		Name:              reqDTO.Name,
		Surname:           reqDTO.Surname,
		Email:             reqDTO.Email,
		Password:          reqDTO.Password,
		PhoneNumber:       reqDTO.PhoneNumber,
		BirthDate:         reqDTO.BirthDate,
		CategoryID:        reqDTO.CategoryID,
		SubcategoryID:     reqDTO.SubcategoryID,
		CustomSubcategory: reqDTO.CustomSubcategory,
	})
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/contact/%d", id))
	respondWithJSON(w, http.StatusCreated, CreateContactResponseDTO{ID: id})
}

func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contactIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	var reqDTO UpdateContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithValidationError(w, err)
		return
	}

	err = h.app.UpdateContact(ctx, app.UpdateContactInput{
		ID:                id,
		Name:              reqDTO.Name,
		Surname:           reqDTO.Surname,
		Email:             reqDTO.Email,
		Password:          reqDTO.Password,
		PhoneNumber:       reqDTO.PhoneNumber,
		BirthDate:         reqDTO.BirthDate,
		CategoryID:        reqDTO.CategoryID,
		SubcategoryID:     reqDTO.SubcategoryID,
		CustomSubcategory: reqDTO.CustomSubcategory,
	})
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contactIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	if err := h.app.DeleteContact(ctx, id); err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contactIDFromURL(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	contact, err := h.app.GetContactByID(ctx, id)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) GetAllContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queryDTO, err := bindListQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validate.StructCtx(ctx, queryDTO); err != nil {
		respondWithValidationError(w, err)
		return
	}

	result, err := h.app.GetAllContacts(ctx, app.ListContactsInput{
		SearchPhrase:  queryDTO.SearchPhrase,
		PageNumber:    queryDTO.PageNumber,
		PageSize:      queryDTO.PageSize,
		SortBy:        queryDTO.SortBy,
		SortDirection: domain.SortDirection(queryDTO.SortDirection),
	})
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *ContactHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.app.ListCategories(r.Context())
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func contactIDFromURL(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact id")
	}
	return id, nil
}

// bindListQuery maps the query string into GetAllContactsQueryDTO.
// Sort parameters are lowercased so validation and column mapping stay
// case-insensitive.
func bindListQuery(r *http.Request) (GetAllContactsQueryDTO, error) {
	q := r.URL.Query()
	dto := GetAllContactsQueryDTO{
		SearchPhrase:  q.Get("searchPhrase"),
		SortBy:        strings.ToLower(q.Get("sortBy")),
		SortDirection: strings.ToLower(q.Get("sortDirection")),
	}

	if raw := q.Get("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return dto, fmt.Errorf("pageNumber must be an integer")
		}
		dto.PageNumber = n
	}
	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return dto, fmt.Errorf("pageSize must be an integer")
		}
		dto.PageSize = n
	}
	return dto, nil
}
