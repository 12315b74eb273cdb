package handlers

import (
	"log/slog"
	"net/http"

	"github.com/estately/backend/internal/listing"
	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/propertyform"
	"github.com/estately/backend/internal/services"
)

// ListingHandler serves the public browse view.
type ListingHandler struct {
	properties services.PropertyService
}

func NewListingHandler(properties services.PropertyService) *ListingHandler {
	return &ListingHandler{properties: properties}
}

type listingPage struct {
	Criteria listing.Criteria `json:"criteria"`
	Total    int              `json:"total"`
	Results  []listing.Record `json:"results"`
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	criteria, errs := listing.ParseQuery(r.URL.Query())
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	records, ok := h.records(w, r)
	if !ok {
		return
	}

	visible := listing.ComputeVisible(records, criteria)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(listingPage{
		Criteria: criteria,
		Total:    len(records),
		Results:  visible,
	}))
}

func (h *ListingHandler) Facets(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(listing.BuildFacets(records)))
}

func (h *ListingHandler) records(w http.ResponseWriter, r *http.Request) ([]listing.Record, bool) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	props, err := h.properties.List(ctx)
	if err != nil {
		slog.Error("load listings", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load listings"))
		return nil, false
	}
	return listing.FromProperties(props), true
}

type amenityCatalog struct {
	Category      propertyform.Category  `json:"category"`
	Amenities     []propertyform.Amenity `json:"amenities"`
	VisibleFields []propertyform.Field   `json:"visibleFields"`
}

// Amenities returns the amenity catalog and form fields for ?category=.
func Amenities(w http.ResponseWriter, r *http.Request) {
	c, err := propertyform.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
			"category": "Category must be one of plot, house, apartment, land",
		}))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(amenityCatalog{
		Category:      c,
		Amenities:     propertyform.Catalog(c),
		VisibleFields: propertyform.VisibleFields(c),
	}))
}
