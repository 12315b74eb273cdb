package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estately/backend/internal/contracts"
	"github.com/estately/backend/internal/middleware"
	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/services"
)

type PropertyHandler struct {
	properties services.PropertyService
}

func NewPropertyHandler(properties services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	props, err := h.properties.List(ctx)
	if err != nil {
		slog.Error("list properties", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list properties"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(props))
}

func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, err := h.properties.GetByID(ctx, chi.URLParam(r, "propertyId"))
	if err != nil {
		h.writeServiceError(w, "get property", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(p))
}

func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID := middleware.GetUserID(r.Context())
	p, err := h.properties.Create(ctx, userID, in)
	if err != nil {
		h.writeServiceError(w, "create property", err)
		return
	}

	slog.Info("property created", "property_id", p.ID, "user_id", userID, "category", p.Category)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(p))
}

func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id := chi.URLParam(r, "propertyId")
	p, err := h.properties.Update(ctx, id, in)
	if err != nil {
		h.writeServiceError(w, "update property", err)
		return
	}

	slog.Info("property updated", "property_id", p.ID, "user_id", middleware.GetUserID(r.Context()))
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(p))
}

func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id := chi.URLParam(r, "propertyId")
	if err := h.properties.Delete(ctx, id); err != nil {
		h.writeServiceError(w, "delete property", err)
		return
	}

	slog.Info("property deleted", "property_id", id, "user_id", middleware.GetUserID(r.Context()))
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Property deleted successfully"}))
}

func (h *PropertyHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	var req models.SetFeaturedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	p, err := h.properties.SetFeatured(ctx, chi.URLParam(r, "propertyId"), req.Featured)
	if err != nil {
		h.writeServiceError(w, "set featured", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(p))
}

// decodeInput checks the body against the property schema, then against
// the request's own rules. It writes the error response itself.
func (h *PropertyHandler) decodeInput(w http.ResponseWriter, r *http.Request) (*models.PropertyInput, bool) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, models.NewErrorResponse("Request body too large"))
		return nil, false
	}

	if err := contracts.ValidateProperty(body); err != nil {
		var serr *contracts.SchemaError
		if errors.As(err, &serr) {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(serr.Fields))
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return nil, false
	}

	var in models.PropertyInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return nil, false
	}
	if errs := in.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return nil, false
	}
	return &in, true
}

func (h *PropertyHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Property not found"))
	case errors.Is(err, services.ErrInvalidYearBuilt):
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
			"yearBuilt": "Year built must contain a four-digit year",
		}))
	default:
		slog.Error(op, "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to "+op))
	}
}
