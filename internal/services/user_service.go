package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/estately/backend/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService holds local accounts for password login. Registered users get
// the user role; admins come from EnsureAdmin.
type UserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string
	cost    int
}

func NewUserService() *UserService {
	return &UserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		cost:    bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	return s.create(req.Email, req.Password, req.Name, models.RoleUser)
}

// EnsureAdmin creates the admin account if no account uses email yet.
func (s *UserService) EnsureAdmin(email, password string) (*models.User, error) {
	u, err := s.create(email, password, "Administrator", models.RoleAdmin)
	if errors.Is(err, ErrEmailExists) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		existing := *s.users[s.byEmail[normalizeEmail(email)]]
		return &existing, nil
	}
	return u, err
}

func (s *UserService) create(email, password, name, role string) (*models.User, error) {
	email = normalizeEmail(email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailExists
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(name),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.byEmail[email] = user.ID

	c := *user
	return &c, nil
}

// Login checks credentials. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials.
func (s *UserService) Login(req *models.LoginRequest) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byEmail[normalizeEmail(req.Email)]
	if !exists {
		return nil, ErrInvalidCredentials
	}
	user := s.users[userID]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	c := *user
	return &c, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	c := *user
	return &c, nil
}
