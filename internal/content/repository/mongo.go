package repository

import (
	"context"
	"fmt"

	"github.com/teamsite/teamsite/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo implements Repository over a single Mongo collection. Documents
// get a store-assigned ObjectID which is exposed as a hex string id.
type MongoRepo[T models.Item] struct {
	col *mongo.Collection
}

func NewMongoRepo[T models.Item](col *mongo.Collection) *MongoRepo[T] {
	return &MongoRepo[T]{col: col}
}

func (m *MongoRepo[T]) Insert(ctx context.Context, item T) (string, error) {
	res, err := m.col.InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", m.col.Name(), err)
	}
	id, err := idString(res.InsertedID)
	if err != nil {
		return "", err
	}
	item.SetID(id)
	return id, nil
}

func (m *MongoRepo[T]) List(ctx context.Context) ([]T, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", m.col.Name(), err)
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
	}
	return out, nil
}

func (m *MongoRepo[T]) Count(ctx context.Context) (int64, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", m.col.Name(), err)
	}
	return n, nil
}

func idString(v interface{}) (string, error) {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return "", fmt.Errorf("unexpected inserted id type %T", v)
	}
}
