// Package passwords hashes and verifies login passwords with bcrypt.
//
// bcrypt is deliberately slow, so every call runs on a bounded pool of
// workers: at most Workers hashes are computed at once and callers waiting
// for a slot give up when their context ends.
package passwords

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher is safe for concurrent use.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher returns a Hasher using the given bcrypt cost and worker count.
func NewHasher(cost, workers int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if workers < 1 {
		workers = 1
	}
	return &Hasher{cost: cost, sem: semaphore.NewWeighted(int64(workers))}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	var digest []byte
	err := h.run(ctx, func() error {
		var err error
		digest, err = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest or an
// over-long plaintext is a mismatch, not an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	var match bool
	err := h.run(ctx, func() error {
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
		switch {
		case err == nil:
			match = true
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
			errors.Is(err, bcrypt.ErrHashTooShort),
			errors.Is(err, bcrypt.ErrPasswordTooLong):
			match = false
		default:
			var ic bcrypt.InvalidHashPrefixError
			var iv bcrypt.HashVersionTooNewError
			if errors.As(err, &ic) || errors.As(err, &iv) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	return match, nil
}

// run executes fn on its own goroutine once a worker slot is free. If ctx ends
// first the caller returns immediately; an already running fn still finishes
// and releases its slot.
func (h *Hasher) run(ctx context.Context, fn func() error) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		defer h.sem.Release(1)
		done <- fn()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
