package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// ErrMediaRejected is returned when SafeSearch flags an upload as unsafe.
var ErrMediaRejected = errors.New("media rejected: unsafe content")

// ModerationService checks uploaded images held under a pending name and
// promotes the safe ones to their public name.
type ModerationService struct {
	gcs        *gcs.Client
	bucket     string
	classifier ImageClassifier
}

func NewModerationService(client *gcs.Client, bucket string, classifier ImageClassifier) *ModerationService {
	return &ModerationService{
		gcs:        client,
		bucket:     bucket,
		classifier: classifier,
	}
}

// ModerateAndPromote classifies pendingName. Unsafe objects are deleted and
// ErrMediaRejected returned; safe ones are copied to finalName with a fresh
// download token and the pending object removed.
func (m *ModerationService) ModerateAndPromote(ctx context.Context, pendingName, finalName string) (string, error) {
	gcsURI := fmt.Sprintf("gs://%s/%s", m.bucket, pendingName)

	ss, err := m.classifier.Classify(ctx, gcsURI)
	if err != nil {
		slog.Error("safesearch failed", "object", pendingName, "error", err)
		return "", fmt.Errorf("moderation: safesearch: %w", err)
	}

	slog.Info("safesearch result",
		"object", pendingName,
		"adult", ss.Adult,
		"violence", ss.Violence,
		"racy", ss.Racy,
		"unsafe", ss.IsUnsafe(),
	)

	if ss.IsUnsafe() {
		if err := m.deleteObject(ctx, pendingName); err != nil {
			slog.Warn("delete rejected upload failed", "object", pendingName, "error", err)
		}
		return "", ErrMediaRejected
	}

	token := uuid.New().String()
	if err := m.promoteObject(ctx, pendingName, finalName, token); err != nil {
		return "", fmt.Errorf("moderation: promote: %w", err)
	}
	return downloadURL(m.bucket, finalName, token), nil
}

func (m *ModerationService) promoteObject(ctx context.Context, from, to, token string) error {
	b := m.gcs.Bucket(m.bucket)
	src := b.Object(from)
	dst := b.Object(to)

	// Freshly written objects are occasionally not yet visible.
	var attrs *gcs.ObjectAttrs
	var err error
	const maxAttempts = 3
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attrs, err = src.Attrs(ctx)
		if err == nil {
			break
		}
		if !errors.Is(err, gcs.ErrObjectNotExist) || attempt == maxAttempts {
			return fmt.Errorf("source attrs: %w", err)
		}
		backoff := time.Duration(attempt) * 500 * time.Millisecond
		slog.Debug("pending object not visible yet", "object", from, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	md := make(map[string]string, len(attrs.Metadata)+2)
	for k, v := range attrs.Metadata {
		md[k] = v
	}
	md["moderation"] = "approved"
	md["firebaseStorageDownloadTokens"] = token

	copier := dst.CopierFrom(src)
	copier.ContentType = attrs.ContentType
	copier.Metadata = md
	if _, err := copier.Run(ctx); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return src.Delete(ctx)
}

func (m *ModerationService) deleteObject(ctx context.Context, name string) error {
	return m.gcs.Bucket(m.bucket).Object(name).Delete(ctx)
}

// downloadURL builds a token-authorised Firebase Storage download link.
func downloadURL(bucket, objectName, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket,
		url.PathEscape(objectName),
		url.QueryEscape(token),
	)
}
