package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/estately/backend/internal/logging"
	"github.com/estately/backend/internal/middleware"
	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/services"
)

// Deps carries everything the router needs. Captcha and Notifier are
// optional; UploadDir is served under /uploads/ when set.
type Deps struct {
	Properties services.PropertyService
	Leads      services.LeadService
	Media      services.MediaService
	Drafts     *services.DraftStore
	Dashboard  *services.DashboardService
	Users      *services.UserService

	Verifier middleware.TokenVerifier
	Tokens   *middleware.JWTVerifier

	Captcha  CaptchaVerifier
	Notifier services.LeadNotifier

	Logger          *slog.Logger
	AllowedOrigins  []string
	UploadDir       string
	MaxUploadSizeMB int64
	JWTExpiration   time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"*"}
	}
	if d.MaxUploadSizeMB <= 0 {
		d.MaxUploadSizeMB = 10
	}
	if d.JWTExpiration <= 0 {
		d.JWTExpiration = 24 * time.Hour
	}

	propertyHandler := NewPropertyHandler(d.Properties)
	listingHandler := NewListingHandler(d.Properties)
	mediaHandler := NewMediaHandler(d.Media, d.MaxUploadSizeMB)
	draftHandler := NewDraftHandler(d.Drafts, d.Properties)
	leadHandler := NewLeadHandler(d.Leads, d.Properties, d.Captcha, d.Notifier)
	dashboardHandler := NewDashboardHandler(d.Dashboard)
	authHandler := NewAuthHandler(d.Users, d.Tokens, d.JWTExpiration)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	authenticate := middleware.Authenticate(d.Verifier)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/properties", propertyHandler.ListProperties)
		r.Get("/properties/{propertyId}", propertyHandler.GetProperty)
		r.Get("/listings", listingHandler.Search)
		r.Get("/listings/facets", listingHandler.Facets)
		r.Get("/amenities", Amenities)
		r.Post("/leads", leadHandler.CreateLead)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/auth/me", authHandler.Me)
		})

		// Back-office routes
		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)

			r.Post("/properties", propertyHandler.CreateProperty)
			r.Put("/properties/{propertyId}", propertyHandler.UpdateProperty)
			r.Delete("/properties/{propertyId}", propertyHandler.DeleteProperty)
			r.Post("/properties/{propertyId}/featured", propertyHandler.SetFeatured)

			r.Post("/media", mediaHandler.Upload)
			r.Get("/media", mediaHandler.Search)
			r.Delete("/media/{fileId}", mediaHandler.Delete)

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", draftHandler.CreateDraft)
				r.Route("/{draftId}", func(r chi.Router) {
					r.Get("/", draftHandler.GetDraft)
					r.Delete("/", draftHandler.DeleteDraft)
					r.Post("/events", draftHandler.ApplyEvent)
					r.Post("/preview", draftHandler.SetPreview)
					r.Post("/validate", draftHandler.ValidateDraft)
					r.Post("/submit", draftHandler.SubmitDraft)
				})
			})

			r.Get("/leads", leadHandler.ListLeads)
			r.Put("/leads/{leadId}/status", leadHandler.UpdateLeadStatus)

			r.Get("/dashboard", dashboardHandler.Summary)
		})
	})

	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	return r
}
