package repository

import (
	"context"

	"github.com/teamsite/teamsite/internal/models"
)

// Repository is a create+read store for one content collection. T is a
// pointer to a models record (e.g. *models.Project).
type Repository[T models.Item] interface {
	// List returns every item in the store's natural order.
	List(ctx context.Context) ([]T, error)
	// Insert stores item, sets its ID and returns it.
	Insert(ctx context.Context, item T) (string, error)
	// Count returns the number of stored items.
	Count(ctx context.Context) (int64, error)
}
