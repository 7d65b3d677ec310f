package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB-backed Store. One instance wraps one collection.
type Mongo[T any] struct {
	col *mongo.Collection
}

// NewMongo wraps a collection and ensures a unique index per unique field
// (legalNumber for companies, email for users). Index creation failure is an
// error: without the index the uniqueness invariant is unenforced.
func NewMongo[T any](col *mongo.Collection, unique ...string) (*Mongo[T], error) {
	for _, field := range unique {
		idx := mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := col.Indexes().CreateOne(context.Background(), idx); err != nil {
			return nil, fmt.Errorf("create unique index on %s.%s: %w", col.Name(), field, err)
		}
	}
	return &Mongo[T]{col: col}, nil
}

func (s *Mongo[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	m, err := toDoc(doc)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	m["_id"] = primitive.NewObjectID()
	m["createdAt"] = now
	m["updatedAt"] = now
	if _, err := s.col.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return fromDoc[T](m)
}

func (s *Mongo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var out T
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (s *Mongo[T]) UpdateByID(ctx context.Context, id string, set bson.M) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	fields := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range set {
		fields[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}

func (s *Mongo[T]) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo[T]) List(ctx context.Context, q ListQuery) (*Page[T], error) {
	filter := q.MongoFilter()
	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(q.SortSpec()).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	items := []*T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return &Page[T]{
		TotalCount:  total,
		TotalPages:  TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Items:       items,
	}, nil
}

func (s *Mongo[T]) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*T, error) {
	out := map[primitive.ObjectID]*T{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		var key struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := bson.Unmarshal(cur.Current, &key); err != nil {
			return nil, err
		}
		out[key.ID] = &item
	}
	return out, cur.Err()
}

func (s *Mongo[T]) FindOneByField(ctx context.Context, field string, value interface{}) (*T, error) {
	var out T
	if err := s.col.FindOne(ctx, bson.M{field: value}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
