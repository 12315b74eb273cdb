package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/storage"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

type LeadService interface {
	Create(ctx context.Context, req *models.CreateLeadRequest) (*models.Lead, error)
	// List returns leads newest first. An empty status matches all.
	List(ctx context.Context, status string) ([]*models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Lead, error)
}

type MemoryLeadService struct {
	mu    sync.RWMutex
	leads map[string]*models.Lead
	store *storage.JSONStore[[]*models.Lead]
}

func NewMemoryLeadService(store *storage.JSONStore[[]*models.Lead]) (*MemoryLeadService, error) {
	s := &MemoryLeadService{
		leads: make(map[string]*models.Lead),
		store: store,
	}
	if store == nil {
		return s, nil
	}
	list, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}
	for _, l := range list {
		if l != nil && l.ID != "" {
			s.leads[l.ID] = l
		}
	}
	return s, nil
}

func newLead(req *models.CreateLeadRequest) *models.Lead {
	now := time.Now().UTC()
	return &models.Lead{
		ID:         uuid.New().String(),
		PropertyID: strings.TrimSpace(req.PropertyID),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		Message:    strings.TrimSpace(req.Message),
		Status:     models.LeadStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *MemoryLeadService) Create(ctx context.Context, req *models.CreateLeadRequest) (*models.Lead, error) {
	lead := newLead(req)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.leads[lead.ID] = lead
	if err := s.persistLocked(); err != nil {
		delete(s.leads, lead.ID)
		return nil, err
	}
	c := *lead
	return &c, nil
}

func (s *MemoryLeadService) List(ctx context.Context, status string) ([]*models.Lead, error) {
	if status != "" && !models.IsValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Lead, 0, len(s.leads))
	for _, l := range s.sortedLocked() {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryLeadService) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	c := *l
	return &c, nil
}

func (s *MemoryLeadService) UpdateStatus(ctx context.Context, id, status string) (*models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	updated := *existing
	updated.Status = status
	updated.UpdatedAt = time.Now().UTC()

	s.leads[id] = &updated
	if err := s.persistLocked(); err != nil {
		s.leads[id] = existing
		return nil, err
	}
	c := updated
	return &c, nil
}

func (s *MemoryLeadService) sortedLocked() []*models.Lead {
	out := make([]*models.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemoryLeadService) persistLocked() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.sortedLocked()); err != nil {
		return fmt.Errorf("persist leads: %w", err)
	}
	return nil
}
