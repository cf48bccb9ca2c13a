package repository

import (
	"context"
	"sync"

	"github.com/teamsite/teamsite/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used for tests and for running the
// site without a database in development.
type MemoryRepo[T models.Item] struct {
	mu    sync.RWMutex
	items []T
}

func NewMemoryRepo[T models.Item]() *MemoryRepo[T] {
	return &MemoryRepo[T]{}
}

func (m *MemoryRepo[T]) Insert(ctx context.Context, item T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// same id shape Mongo assigns, so clients can't tell the stores apart
	id := primitive.NewObjectID().Hex()
	item.SetID(id)
	m.items = append(m.items, item)
	return id, nil
}

func (m *MemoryRepo[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryRepo[T]) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.items)), nil
}
