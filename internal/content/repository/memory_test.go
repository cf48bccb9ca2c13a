package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamsite/teamsite/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRepoInsertList(t *testing.T) {
	r := NewMemoryRepo[*models.Project]()
	ctx := context.Background()

	first := &models.Project{Title: "one"}
	id, err := r.Insert(ctx, first)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, id, first.ID)
	require.True(t, primitive.IsValidObjectID(id))

	_, err = r.Insert(ctx, &models.Project{Title: "two"})
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "one", list[0].Title)
	require.Equal(t, "two", list[1].Title)
	require.NotEqual(t, list[0].ID, list[1].ID)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestMemoryRepoCanceledContext(t *testing.T) {
	r := NewMemoryRepo[*models.Blog]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Insert(ctx, &models.Blog{Title: "x"})
	require.ErrorIs(t, err, context.Canceled)

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := idString(oid)
	require.NoError(t, err)
	require.Equal(t, oid.Hex(), got)

	got, err = idString("custom")
	require.NoError(t, err)
	require.Equal(t, "custom", got)

	_, err = idString(42)
	require.Error(t, err)
}
