package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estately/backend/internal/config"
	"github.com/estately/backend/internal/handlers"
	"github.com/estately/backend/internal/logging"
	"github.com/estately/backend/internal/middleware"
	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/services"
	"github.com/estately/backend/internal/storage"
)

const (
	draftMaxIdle      = 24 * time.Hour
	draftPruneEvery   = 10 * time.Minute
	shutdownTimeout   = 15 * time.Second
	startupTimeout    = 20 * time.Second
	diskMediaBasePath = "/uploads/"
)

func main() {
	cfg := config.Load()

	logger := logging.Setup(logging.Options{
		Writer: os.Stderr,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Color:  cfg.DevMode,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	properties, leads, closeStore, err := openStores(startCtx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	media, uploadDir, closeMedia, err := openMedia(startCtx, cfg)
	if err != nil {
		return err
	}
	defer closeMedia()

	// Local tokens are always accepted; Firebase ID tokens are tried first
	// when a project is configured.
	tokens := middleware.NewJWTVerifier(cfg.JWTSecret)
	verifiers := middleware.Verifiers{}
	if cfg.FirebaseProjectID != "" {
		fb, err := middleware.NewFirebaseVerifier(startCtx, middleware.FirebaseConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			logger.Warn("firebase auth disabled", "err", err)
		} else {
			verifiers = append(verifiers, fb)
		}
	}
	verifiers = append(verifiers, tokens)

	users := services.NewUserService()
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := users.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
		logger.Info("admin account ready", "email", cfg.AdminEmail)
	}

	var captcha handlers.CaptchaVerifier
	if cfg.RecaptchaSecret != "" {
		captcha = services.NewRecaptchaVerifier(cfg.RecaptchaSecret)
	} else {
		logger.Warn("RECAPTCHA_SECRET not set; enquiries are not bot-checked")
	}

	var notifier services.LeadNotifier
	if cfg.SendGridAPIKey != "" && cfg.LeadFromEmail != "" && cfg.LeadToEmail != "" {
		notifier = services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.LeadFromEmail, cfg.LeadToEmail)
	}

	drafts := services.NewDraftStore()
	go pruneDrafts(ctx, drafts, logger)

	router := handlers.NewRouter(handlers.Deps{
		Properties:      properties,
		Leads:           leads,
		Media:           media,
		Drafts:          drafts,
		Dashboard:       services.NewDashboardService(properties, leads),
		Users:           users,
		Verifier:        verifiers,
		Tokens:          tokens,
		Captcha:         captcha,
		Notifier:        notifier,
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		UploadDir:       uploadDir,
		MaxUploadSizeMB: cfg.MaxUploadSizeMB,
		JWTExpiration:   cfg.JWTExpiration,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("estately API server starting", "addr", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// openStores picks Mongo when MONGO_URI is set and JSON files under
// DATA_DIR otherwise.
func openStores(ctx context.Context, cfg *config.Config) (services.PropertyService, services.LeadService, func(), error) {
	if cfg.MongoURI != "" {
		client, err := services.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, nil, err
		}
		db := client.Database(cfg.MongoDB)
		closeFn := func() { disconnect(client) }
		return services.NewMongoPropertyService(ctx, db), services.NewMongoLeadService(ctx, db), closeFn, nil
	}

	propStore, err := storage.NewJSONStore[[]*models.Property](cfg.DataDir, "properties.json")
	if err != nil {
		return nil, nil, nil, err
	}
	leadStore, err := storage.NewJSONStore[[]*models.Lead](cfg.DataDir, "leads.json")
	if err != nil {
		return nil, nil, nil, err
	}
	properties, err := services.NewMemoryPropertyService(propStore)
	if err != nil {
		return nil, nil, nil, err
	}
	leads, err := services.NewMemoryLeadService(leadStore)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Info("using file storage", "dir", cfg.DataDir)
	return properties, leads, func() {}, nil
}

func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		slog.Warn("mongo disconnect", "err", err)
	}
}

// openMedia picks the GCS bucket when GCS_BUCKET is set and the local upload
// directory otherwise. The returned directory is served under /uploads/ and
// is empty for GCS.
func openMedia(ctx context.Context, cfg *config.Config) (services.MediaService, string, func(), error) {
	if cfg.GCSBucket != "" {
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, "", nil, err
		}
		var moderator *services.ModerationService
		if cfg.MediaModeration {
			classifier, err := services.NewVisionClassifier(ctx)
			if err != nil {
				client.Close()
				return nil, "", nil, err
			}
			moderator = services.NewModerationService(client, cfg.GCSBucket, classifier)
		}
		slog.Info("using cloud storage for media", "bucket", cfg.GCSBucket, "moderation", moderator != nil)
		return services.NewGCSMediaService(client, cfg.GCSBucket, moderator), "", func() { client.Close() }, nil
	}

	media, err := services.NewDiskMediaService(cfg.UploadDir, cfg.DataDir, diskMediaBasePath)
	if err != nil {
		return nil, "", nil, err
	}
	return media, cfg.UploadDir, func() {}, nil
}

func pruneDrafts(ctx context.Context, drafts *services.DraftStore, logger *slog.Logger) {
	ticker := time.NewTicker(draftPruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := drafts.Prune(draftMaxIdle, now); n > 0 {
				logger.Info("pruned idle drafts", "count", n)
			}
		}
	}
}
