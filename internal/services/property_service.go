package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/storage"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrUnauthorized     = errors.New("unauthorized to modify this resource")
)

// PropertyService is the listing persistence collaborator.
type PropertyService interface {
	// List returns every property, newest first.
	List(ctx context.Context) ([]*models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, userID string, in *models.PropertyInput) (*models.Property, error)
	Update(ctx context.Context, id string, in *models.PropertyInput) (*models.Property, error)
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) (*models.Property, error)
}

// MemoryPropertyService keeps properties in memory, optionally mirrored to a
// JSON file after every write.
type MemoryPropertyService struct {
	mu         sync.RWMutex
	properties map[string]*models.Property
	store      *storage.JSONStore[[]*models.Property]
}

// NewMemoryPropertyService loads any existing snapshot from store. A nil
// store keeps everything in memory only.
func NewMemoryPropertyService(store *storage.JSONStore[[]*models.Property]) (*MemoryPropertyService, error) {
	s := &MemoryPropertyService{
		properties: make(map[string]*models.Property),
		store:      store,
	}
	if store == nil {
		return s, nil
	}
	list, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	for _, p := range list {
		if p != nil && p.ID != "" {
			s.properties[p.ID] = p
		}
	}
	return s, nil
}

func (s *MemoryPropertyService) List(ctx context.Context) ([]*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

func (s *MemoryPropertyService) GetByID(ctx context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return copyProperty(p), nil
}

func (s *MemoryPropertyService) Create(ctx context.Context, userID string, in *models.PropertyInput) (*models.Property, error) {
	now := time.Now().UTC()
	p := &models.Property{
		ID:        uuid.New().String(),
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := applyInput(p, in, now); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.properties[p.ID] = p
	if err := s.persistLocked(); err != nil {
		delete(s.properties, p.ID)
		return nil, err
	}
	return copyProperty(p), nil
}

func (s *MemoryPropertyService) Update(ctx context.Context, id string, in *models.PropertyInput) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	updated := copyProperty(existing)
	if err := applyInput(updated, in, time.Now().UTC()); err != nil {
		return nil, err
	}

	s.properties[id] = updated
	if err := s.persistLocked(); err != nil {
		s.properties[id] = existing
		return nil, err
	}
	return copyProperty(updated), nil
}

func (s *MemoryPropertyService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[id]
	if !ok {
		return ErrPropertyNotFound
	}
	delete(s.properties, id)
	if err := s.persistLocked(); err != nil {
		s.properties[id] = existing
		return err
	}
	return nil
}

func (s *MemoryPropertyService) SetFeatured(ctx context.Context, id string, featured bool) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	updated := copyProperty(existing)
	updated.Featured = featured
	updated.UpdatedAt = time.Now().UTC()

	s.properties[id] = updated
	if err := s.persistLocked(); err != nil {
		s.properties[id] = existing
		return nil, err
	}
	return copyProperty(updated), nil
}

func (s *MemoryPropertyService) sortedLocked() []*models.Property {
	out := make([]*models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, copyProperty(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemoryPropertyService) persistLocked() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.sortedLocked()); err != nil {
		return fmt.Errorf("persist properties: %w", err)
	}
	return nil
}

func copyProperty(p *models.Property) *models.Property {
	c := *p
	c.Amenities = append([]string{}, p.Amenities...)
	c.MediaFiles = append([]models.MediaFile{}, p.MediaFiles...)
	if p.FeaturedImage != nil {
		img := *p.FeaturedImage
		c.FeaturedImage = &img
	}
	return &c
}
