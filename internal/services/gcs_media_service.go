package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/estately/backend/internal/models"
)

const (
	gcsPendingPrefix = "pending/"
	gcsMediaPrefix   = "media/"
)

// GCSMediaService stores uploads in a Cloud Storage bucket. When a
// moderator is set, images are written under pending/ and only promoted to
// media/ after passing SafeSearch.
type GCSMediaService struct {
	client    *gcs.Client
	bucket    string
	moderator *ModerationService
}

func NewGCSMediaService(client *gcs.Client, bucket string, moderator *ModerationService) *GCSMediaService {
	return &GCSMediaService{client: client, bucket: bucket, moderator: moderator}
}

func (s *GCSMediaService) Upload(ctx context.Context, name, mimeType string, r io.Reader) (*models.MediaFile, error) {
	mt := baseMime(mimeType)
	ext, ok := allowedMedia[mt]
	if !ok {
		return nil, ErrInvalidMedia
	}

	id := uuid.New().String()
	finalName := gcsMediaPrefix + id + ext
	moderate := s.moderator != nil && strings.HasPrefix(mt, "image/")

	objectName := finalName
	if moderate {
		objectName = gcsPendingPrefix + id + ext
	}

	token := uuid.New().String()
	display := displayName(name, id+ext)
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = mt
	w.Metadata = map[string]string{
		"fileId":                        id,
		"name":                          display,
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return nil, fmt.Errorf("upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload %s: %w", objectName, err)
	}

	link := downloadURL(s.bucket, finalName, token)
	if moderate {
		approved, err := s.moderator.ModerateAndPromote(ctx, objectName, finalName)
		if err != nil {
			return nil, err
		}
		link = approved
	}

	return &models.MediaFile{FileID: id, URL: link, Mime: mt, Name: display}, nil
}

func (s *GCSMediaService) Search(ctx context.Context, query string) ([]models.MediaFile, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	type hit struct {
		file    models.MediaFile
		created time.Time
	}
	hits := make([]hit, 0)

	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: gcsMediaPrefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list media: %w", err)
		}
		file := objectToMedia(s.bucket, attrs)
		if q != "" && !strings.Contains(strings.ToLower(file.Name), q) {
			continue
		}
		hits = append(hits, hit{file: file, created: attrs.Created})
	}

	sort.Slice(hits, func(i, j int) bool {
		if !hits[i].created.Equal(hits[j].created) {
			return hits[i].created.After(hits[j].created)
		}
		return hits[i].file.FileID < hits[j].file.FileID
	})

	out := make([]models.MediaFile, 0, MediaSearchLimit)
	for i := 0; i < len(hits) && i < MediaSearchLimit; i++ {
		out = append(out, hits[i].file)
	}
	return out, nil
}

func (s *GCSMediaService) Delete(ctx context.Context, fileID string) error {
	if fileID == "" || strings.Contains(fileID, "/") {
		return ErrMediaNotFound
	}
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: gcsMediaPrefix + fileID})
	deleted := 0
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("find media: %w", err)
		}
		if objectToMedia(s.bucket, attrs).FileID != fileID {
			continue
		}
		if err := s.client.Bucket(s.bucket).Object(attrs.Name).Delete(ctx); err != nil {
			return fmt.Errorf("delete media: %w", err)
		}
		deleted++
	}
	if deleted == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func objectToMedia(bucket string, attrs *gcs.ObjectAttrs) models.MediaFile {
	base := strings.TrimPrefix(attrs.Name, gcsMediaPrefix)
	id := attrs.Metadata["fileId"]
	if id == "" {
		id = strings.TrimSuffix(base, path.Ext(base))
	}
	name := attrs.Metadata["name"]
	if name == "" {
		name = base
	}
	token := attrs.Metadata["firebaseStorageDownloadTokens"]
	if i := strings.Index(token, ","); i >= 0 {
		token = token[:i]
	}
	return models.MediaFile{
		FileID: id,
		URL:    downloadURL(bucket, attrs.Name, token),
		Mime:   attrs.ContentType,
		Name:   name,
	}
}
