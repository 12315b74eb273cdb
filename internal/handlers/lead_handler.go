package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/services"
)

// CaptchaVerifier is satisfied by *services.RecaptchaVerifier.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type LeadHandler struct {
	leads      services.LeadService
	properties services.PropertyService
	captcha    CaptchaVerifier
	notifier   services.LeadNotifier
}

// NewLeadHandler wires the enquiry endpoints. captcha and notifier may be
// nil, which skips the bot check and the email respectively.
func NewLeadHandler(leads services.LeadService, properties services.PropertyService, captcha CaptchaVerifier, notifier services.LeadNotifier) *LeadHandler {
	return &LeadHandler{leads: leads, properties: properties, captcha: captcha, notifier: notifier}
}

func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	errs := req.Validate()
	if h.captcha != nil && strings.TrimSpace(req.RecaptchaToken) == "" {
		errs["recaptchaToken"] = "reCAPTCHA token is required"
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	remoteIP := clientIP(r)
	if h.captcha != nil {
		if err := h.captcha.Verify(ctx, req.RecaptchaToken, remoteIP); err != nil {
			var rerr *services.RecaptchaError
			if errors.As(err, &rerr) {
				slog.Warn("recaptcha refused", "ip", remoteIP, "codes", rerr.Codes)
				writeJSON(w, http.StatusForbidden, models.NewErrorResponse("reCAPTCHA verification failed"))
				return
			}
			slog.Error("recaptcha error", "ip", remoteIP, "err", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify reCAPTCHA"))
			return
		}
	}

	var property *models.Property
	if id := strings.TrimSpace(req.PropertyID); id != "" {
		p, err := h.properties.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, services.ErrPropertyNotFound) {
				writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
					"propertyId": "Unknown property",
				}))
				return
			}
			slog.Error("lead property lookup", "property_id", id, "err", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit enquiry"))
			return
		}
		property = p
	}

	lead, err := h.leads.Create(ctx, &req)
	if err != nil {
		slog.Error("create lead", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit enquiry"))
		return
	}
	slog.Info("lead created", "lead_id", lead.ID, "property_id", lead.PropertyID, "ip", remoteIP)

	if h.notifier != nil {
		if err := h.notifier.NotifyLead(ctx, lead, property); err != nil {
			slog.Warn("lead notification failed", "lead_id", lead.ID, "err", err)
		}
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(lead))
}

func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !models.IsValidLeadStatus(status) {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
			"status": "Status must be one of new, contacted, qualified, closed",
		}))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	leads, err := h.leads.List(ctx, status)
	if err != nil {
		slog.Error("list leads", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list leads"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(leads))
}

func (h *LeadHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLeadStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	lead, err := h.leads.UpdateStatus(ctx, chi.URLParam(r, "leadId"), strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeadNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Lead not found"))
		case errors.Is(err, services.ErrInvalidLeadStatus):
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
				"status": "Status must be one of new, contacted, qualified, closed",
			}))
		default:
			slog.Error("update lead status", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update lead"))
		}
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(lead))
}

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.dashboard.Summary(ctx)
	if err != nil {
		slog.Error("dashboard summary", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to build dashboard"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(summary))
}
