package propertyform

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State is the submit lifecycle of a session.
type State string

const (
	StateEditing State = "editing"
	StateSaved   State = "saved"
)

var (
	ErrSessionClosed  = errors.New("draft has already been saved")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Persister stores a validated draft and returns the listing id.
type Persister interface {
	Save(ctx context.Context, d Draft) (string, error)
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, d Draft) (string, error)

func (f PersisterFunc) Save(ctx context.Context, d Draft) (string, error) {
	return f(ctx, d)
}

// Session owns one draft and its editor state. A session is Saved after
// one successful submit and rejects further edits.
type Session struct {
	mu        sync.Mutex
	id        string
	owner     string
	draft     Draft
	state     State
	preview   bool
	busy      bool
	errors    map[string]string
	submitErr string
	savedID   string
	updatedAt time.Time
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID          string            `json:"id"`
	Owner       string            `json:"owner"`
	State       State             `json:"state"`
	Preview     bool              `json:"preview"`
	Submitting  bool              `json:"submitting"`
	Draft       Draft             `json:"draft"`
	Errors      map[string]string `json:"errors"`
	SubmitError string            `json:"submitError,omitempty"`
	SavedID     string            `json:"savedId,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func NewSession(id, owner string, d Draft) *Session {
	return &Session{
		id:        id,
		owner:     owner,
		draft:     d.clone(),
		state:     StateEditing,
		errors:    make(map[string]string),
		updatedAt: time.Now(),
	}
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Owner() string { return s.owner }

// Dispatch applies events in order. Edits are refused once the session is
// saved or while a submit is outstanding.
func (s *Session) Dispatch(events ...Event) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSaved {
		return s.draft.clone(), ErrSessionClosed
	}
	if s.busy {
		return s.draft.clone(), ErrSubmitInFlight
	}
	for _, e := range events {
		s.draft = Apply(s.draft, e)
		if fc, ok := e.(FieldChanged); ok {
			delete(s.errors, string(fc.Field))
		}
	}
	s.updatedAt = time.Now()
	return s.draft.clone(), nil
}

// SetPreview toggles the read-only preview mode. The draft is untouched.
func (s *Session) SetPreview(on bool) {
	s.mu.Lock()
	s.preview = on
	s.mu.Unlock()
}

// Validate runs validation and replaces the session's error map.
func (s *Session) Validate() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = Validate(s.draft)
	return copyErrors(s.errors)
}

// Submit validates the draft and hands it to p. Validation failures return
// a *ValidationError and keep the session editing. Persister failures keep
// the draft intact so the caller can retry.
func (s *Session) Submit(ctx context.Context, p Persister) (string, error) {
	s.mu.Lock()
	if s.state == StateSaved {
		s.mu.Unlock()
		return "", ErrSessionClosed
	}
	s.errors = Validate(s.draft)
	if len(s.errors) > 0 {
		fields := copyErrors(s.errors)
		s.mu.Unlock()
		return "", &ValidationError{Fields: fields}
	}
	if s.busy {
		s.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	s.busy = true
	s.submitErr = ""
	draft := s.draft.clone()
	s.mu.Unlock()

	id, err := p.Save(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.updatedAt = time.Now()
	if err != nil {
		s.submitErr = err.Error()
		return "", err
	}
	s.state = StateSaved
	s.savedID = id
	s.draft.PropertyID = id
	return id, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.id,
		Owner:       s.owner,
		State:       s.state,
		Preview:     s.preview,
		Submitting:  s.busy,
		Draft:       s.draft.clone(),
		Errors:      copyErrors(s.errors),
		SubmitError: s.submitErr,
		SavedID:     s.savedID,
		UpdatedAt:   s.updatedAt,
	}
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
