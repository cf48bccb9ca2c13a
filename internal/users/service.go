package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teamsite/teamsite/internal/models"
)

// ErrMissingFields is returned by Register when name, email or password is empty.
var ErrMissingFields = errors.New("admin user requires a name, email, and password")

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Register for passwords over MaxPasswordBytes.
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// Hasher is the credential hasher the service depends on.
type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

// Service encapsulates user-related business logic
type Service struct {
	repo   UserRepository
	hasher Hasher
}

func NewService(r UserRepository, h Hasher) *Service {
	return &Service{repo: r, hasher: h}
}

// GetByEmail returns the user with exactly this email, or nil.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	return s.repo.GetByEmail(ctx, email)
}

// Register creates a login user with a hashed password. It fails with
// ErrEmailTaken when the email is already registered.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Email: email, Password: digest}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user when email and password match, nil otherwise.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	ok, err := s.hasher.Verify(ctx, password, u.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return u, nil
}
