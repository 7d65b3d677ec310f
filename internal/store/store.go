package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid record id")
	ErrDuplicate = errors.New("duplicate value for unique field")
)

// Store is the generic document repository instantiated once per entity.
// Implementations stamp createdAt/updatedAt themselves so callers never touch
// timestamps.
type Store[T any] interface {
	Insert(ctx context.Context, doc *T) (*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	// UpdateByID applies a partial $set and returns the post-update document.
	UpdateByID(ctx context.Context, id string, set bson.M) (*T, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) (*Page[T], error)
	// FindByIDs batch-loads documents for reference expansion. Missing ids are
	// simply absent from the result map.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*T, error)
	FindOneByField(ctx context.Context, field string, value interface{}) (*T, error)
}

// Page is the list-endpoint envelope.
type Page[T any] struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Items       []*T  `json:"items"`
}

// toDoc flattens a model into a bson map so both backends can manipulate
// fields by name (timestamps, partial updates) without reflection of their own.
func toDoc(v interface{}) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromDoc[T any](m bson.M) (*T, error) {
	data, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
