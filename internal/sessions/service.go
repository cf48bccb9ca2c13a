package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Service wraps repository operations with business logic
type Service struct {
	repo Repository
	ttl  time.Duration
}

func NewService(r Repository, ttl time.Duration) *Service { return &Service{repo: r, ttl: ttl} }

// TTL is the lifetime given to new sessions.
func (s *Service) TTL() time.Duration { return s.ttl }

// Create stores a new session for the user and returns it.
func (s *Service) Create(ctx context.Context, email, name string) (*Session, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &Session{
		ID:        hex.EncodeToString(b),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get returns the session if it exists and has not expired.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if sess.Expired(time.Now().UTC()) {
		// cleanup expired session
		_ = s.repo.Delete(ctx, id)
		return nil, nil
	}
	return sess, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.repo.Delete(ctx, id)
}
