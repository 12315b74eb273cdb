package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estately/backend/internal/propertyform"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftStore holds open editor sessions. Each session belongs to the user
// who opened it.
type DraftStore struct {
	mu       sync.Mutex
	sessions map[string]*propertyform.Session
}

func NewDraftStore() *DraftStore {
	return &DraftStore{sessions: make(map[string]*propertyform.Session)}
}

func (s *DraftStore) Create(owner string, d propertyform.Draft) *propertyform.Session {
	sess := propertyform.NewSession(uuid.New().String(), owner, d)

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	return sess
}

func (s *DraftStore) Get(owner, id string) (*propertyform.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if sess.Owner() != owner {
		return nil, ErrUnauthorized
	}
	return sess, nil
}

func (s *DraftStore) Delete(owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrDraftNotFound
	}
	if sess.Owner() != owner {
		return ErrUnauthorized
	}
	delete(s.sessions, id)
	return nil
}

// Prune discards sessions untouched for longer than maxIdle and returns how
// many were removed. Sessions with a submit in flight are kept.
func (s *DraftStore) Prune(maxIdle time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		snap := sess.Snapshot()
		if snap.Submitting {
			continue
		}
		if now.Sub(snap.UpdatedAt) > maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// DraftPersister saves drafts through a PropertyService: drafts without a
// property id are created, the rest update their listing.
type DraftPersister struct {
	Properties PropertyService
	UserID     string
}

func (p DraftPersister) Save(ctx context.Context, d propertyform.Draft) (string, error) {
	in := d.Input()
	if d.PropertyID == "" {
		created, err := p.Properties.Create(ctx, p.UserID, in)
		if err != nil {
			return "", err
		}
		return created.ID, nil
	}
	updated, err := p.Properties.Update(ctx, d.PropertyID, in)
	if err != nil {
		return "", err
	}
	return updated.ID, nil
}
