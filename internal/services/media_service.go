package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/storage"
)

// MediaSearchLimit caps the descriptors returned by a media search.
const MediaSearchLimit = 10

var (
	ErrMediaNotFound = errors.New("media not found")
	ErrInvalidMedia  = errors.New("unsupported media type")
)

var allowedMedia = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"application/pdf": ".pdf",
}

// IsAllowedMedia reports whether files of this MIME type may be uploaded.
func IsAllowedMedia(mimeType string) bool {
	_, ok := allowedMedia[baseMime(mimeType)]
	return ok
}

func baseMime(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// MediaService is the media collaborator behind the upload and picker endpoints.
type MediaService interface {
	Upload(ctx context.Context, name, mimeType string, r io.Reader) (*models.MediaFile, error)
	// Search matches names case-insensitively, newest first, at most
	// MediaSearchLimit results. An empty query lists the newest uploads.
	Search(ctx context.Context, query string) ([]models.MediaFile, error)
	Delete(ctx context.Context, fileID string) error
}

type mediaRecord struct {
	models.MediaFile
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

// DiskMediaService stores uploads under a local directory served at /uploads/.
type DiskMediaService struct {
	mu        sync.RWMutex
	uploadDir string
	baseURL   string
	files     map[string]*mediaRecord
	index     *storage.JSONStore[[]*mediaRecord]
}

// NewDiskMediaService stores files in uploadDir and their index in dataDir.
func NewDiskMediaService(uploadDir, dataDir, baseURL string) (*DiskMediaService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	index, err := storage.NewJSONStore[[]*mediaRecord](dataDir, "media.json")
	if err != nil {
		return nil, err
	}
	records, err := index.Load()
	if err != nil {
		return nil, fmt.Errorf("load media index: %w", err)
	}

	s := &DiskMediaService{
		uploadDir: uploadDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		files:     make(map[string]*mediaRecord, len(records)),
		index:     index,
	}
	for _, r := range records {
		if r != nil && r.FileID != "" {
			s.files[r.FileID] = r
		}
	}
	return s, nil
}

func (s *DiskMediaService) Upload(ctx context.Context, name, mimeType string, r io.Reader) (*models.MediaFile, error) {
	mt := baseMime(mimeType)
	ext, ok := allowedMedia[mt]
	if !ok {
		return nil, ErrInvalidMedia
	}

	id := uuid.New().String()
	filename := id + ext
	path := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write media file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write media file: %w", err)
	}

	rec := &mediaRecord{
		MediaFile: models.MediaFile{
			FileID: id,
			URL:    s.baseURL + "/" + filename,
			Mime:   mt,
			Name:   displayName(name, filename),
		},
		Path:      path,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[id] = rec
	if err := s.persistLocked(); err != nil {
		delete(s.files, id)
		os.Remove(path)
		return nil, err
	}
	out := rec.MediaFile
	return &out, nil
}

func (s *DiskMediaService) Search(ctx context.Context, query string) ([]models.MediaFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]*mediaRecord, 0)
	for _, r := range s.files {
		if q == "" || strings.Contains(strings.ToLower(r.Name), q) {
			matches = append(matches, r)
		}
	}
	sortNewest(matches)

	out := make([]models.MediaFile, 0, MediaSearchLimit)
	for i := 0; i < len(matches) && i < MediaSearchLimit; i++ {
		out = append(out, matches[i].MediaFile)
	}
	return out, nil
}

func (s *DiskMediaService) Delete(ctx context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.files[fileID]
	if !ok {
		return ErrMediaNotFound
	}
	if err := os.Remove(rec.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete media file: %w", err)
	}
	delete(s.files, fileID)
	return s.persistLocked()
}

func (s *DiskMediaService) persistLocked() error {
	list := make([]*mediaRecord, 0, len(s.files))
	for _, r := range s.files {
		list = append(list, r)
	}
	sortNewest(list)
	if err := s.index.Save(list); err != nil {
		return fmt.Errorf("persist media index: %w", err)
	}
	return nil
}

func sortNewest(records []*mediaRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].FileID < records[j].FileID
	})
}

func displayName(name, fallback string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return fallback
	}
	return name
}
