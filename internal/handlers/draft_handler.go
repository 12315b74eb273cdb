package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/estately/backend/internal/middleware"
	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/propertyform"
	"github.com/estately/backend/internal/services"
)

// DraftHandler exposes listing editor sessions over HTTP.
type DraftHandler struct {
	drafts     *services.DraftStore
	properties services.PropertyService
}

func NewDraftHandler(drafts *services.DraftStore, properties services.PropertyService) *DraftHandler {
	return &DraftHandler{drafts: drafts, properties: properties}
}

type draftView struct {
	propertyform.Snapshot
	VisibleFields []propertyform.Field   `json:"visibleFields"`
	Catalog       []propertyform.Amenity `json:"amenityCatalog"`
}

func viewOf(s *propertyform.Session) draftView {
	snap := s.Snapshot()
	return draftView{
		Snapshot:      snap,
		VisibleFields: propertyform.VisibleFields(snap.Draft.Category),
		Catalog:       propertyform.Catalog(snap.Draft.Category),
	}
}

type createDraftRequest struct {
	PropertyID string `json:"propertyId"`
	Category   string `json:"category"`
}

func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
			return
		}
	}

	d := propertyform.NewDraft()
	if req.PropertyID != "" {
		ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
		defer cancel()

		p, err := h.properties.GetByID(ctx, req.PropertyID)
		if err != nil {
			if errors.Is(err, services.ErrPropertyNotFound) {
				writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Property not found"))
				return
			}
			slog.Error("hydrate draft", "property_id", req.PropertyID, "err", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load property"))
			return
		}
		d = propertyform.FromProperty(p)
	} else if req.Category != "" {
		c, err := propertyform.ParseCategory(req.Category)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
				"category": "Category must be one of plot, house, apartment, land",
			}))
			return
		}
		d = propertyform.Apply(d, propertyform.CategoryChanged{Category: c})
	}

	userID := middleware.GetUserID(r.Context())
	sess := h.drafts.Create(userID, d)
	slog.Info("draft opened", "draft_id", sess.ID(), "user_id", userID, "property_id", req.PropertyID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(viewOf(sess)))
}

func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(viewOf(sess)))
}

// eventRequest is the wire form of one editor event; Type selects which of
// the other members apply.
type eventRequest struct {
	Type     string             `json:"type"`
	Field    string             `json:"field,omitempty"`
	Value    string             `json:"value,omitempty"`
	Category string             `json:"category,omitempty"`
	Amenity  string             `json:"amenity,omitempty"`
	Checked  bool               `json:"checked,omitempty"`
	Location *models.Location   `json:"location,omitempty"`
	Image    *models.MediaFile  `json:"image,omitempty"`
	Files    []models.MediaFile `json:"files,omitempty"`
	FileID   string             `json:"fileId,omitempty"`
	Featured bool               `json:"featured,omitempty"`
}

func (e eventRequest) toEvent() (propertyform.Event, error) {
	switch e.Type {
	case "field":
		f, err := propertyform.ParseField(e.Field)
		if err != nil {
			return nil, err
		}
		return propertyform.FieldChanged{Field: f, Value: e.Value}, nil
	case "category":
		c, err := propertyform.ParseCategory(e.Category)
		if err != nil {
			return nil, err
		}
		return propertyform.CategoryChanged{Category: c}, nil
	case "amenity":
		if e.Amenity == "" {
			return nil, errors.New("amenity is required")
		}
		return propertyform.AmenityToggled{ID: e.Amenity, Checked: e.Checked}, nil
	case "location":
		if e.Location == nil {
			return nil, errors.New("location is required")
		}
		return propertyform.LocationChanged{Location: *e.Location}, nil
	case "featuredImage":
		return propertyform.FeaturedImageSet{Image: e.Image}, nil
	case "mediaAdded":
		return propertyform.MediaAdded{Files: e.Files}, nil
	case "mediaRemoved":
		return propertyform.MediaRemoved{FileID: e.FileID}, nil
	case "featured":
		return propertyform.FeaturedChanged{Featured: e.Featured}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", e.Type)
}

func (h *DraftHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	ev, err := req.toEvent()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	if _, err := sess.Dispatch(ev); err != nil {
		writeJSON(w, http.StatusConflict, models.NewErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(viewOf(sess)))
}

func (h *DraftHandler) SetPreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Preview bool `json:"preview"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	sess.SetPreview(req.Preview)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(viewOf(sess)))
}

func (h *DraftHandler) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Validate()
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(viewOf(sess)))
}

type submitResult struct {
	PropertyID string           `json:"propertyId"`
	Property   *models.Property `json:"property,omitempty"`
	Draft      draftView        `json:"draft"`
}

// SubmitDraft answers 400 for validation failures or a year the store
// rejects, 409 when the session is
// closed or busy, 502 when the store refused the listing, and 201 on save.
func (h *DraftHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID := middleware.GetUserID(r.Context())
	id, err := sess.Submit(ctx, services.DraftPersister{Properties: h.properties, UserID: userID})
	if err != nil {
		var verr *propertyform.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(verr.Fields))
		case errors.Is(err, services.ErrInvalidYearBuilt):
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
				"yearBuilt": "Year built must contain a four-digit year",
			}))
		case errors.Is(err, propertyform.ErrSessionClosed), errors.Is(err, propertyform.ErrSubmitInFlight):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse(err.Error()))
		default:
			slog.Error("draft submit", "draft_id", sess.ID(), "user_id", userID, "err", err)
			writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to save property"))
		}
		return
	}

	res := submitResult{PropertyID: id, Draft: viewOf(sess)}
	if p, err := h.properties.GetByID(ctx, id); err == nil {
		res.Property = p
	}
	slog.Info("draft submitted", "draft_id", sess.ID(), "property_id", id, "user_id", userID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(res))
}

func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	err := h.drafts.Delete(middleware.GetUserID(r.Context()), chi.URLParam(r, "draftId"))
	if err != nil {
		writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Draft discarded"}))
}

func (h *DraftHandler) session(w http.ResponseWriter, r *http.Request) (*propertyform.Session, bool) {
	sess, err := h.drafts.Get(middleware.GetUserID(r.Context()), chi.URLParam(r, "draftId"))
	if err != nil {
		writeDraftError(w, err)
		return nil, false
	}
	return sess, true
}

func writeDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrDraftNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Draft not found"))
	case errors.Is(err, services.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to edit this draft"))
	default:
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Draft error"))
	}
}
