package store

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store with the same observable semantics as the
// Mongo one: generated ObjectIDs, stamped timestamps, unique-field rejection
// and case-insensitive substring filtering. It backs unit tests and the
// no-MongoDB development mode.
type Memory[T any] struct {
	mu      sync.RWMutex
	docs    map[primitive.ObjectID]bson.M
	seq     map[primitive.ObjectID]int64
	nextSeq int64
	unique  []string
}

// NewMemory creates an empty store enforcing uniqueness on the given fields.
func NewMemory[T any](unique ...string) *Memory[T] {
	return &Memory[T]{
		docs:   map[primitive.ObjectID]bson.M{},
		seq:    map[primitive.ObjectID]int64{},
		unique: unique,
	}
}

func (s *Memory[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	m, err := toDoc(doc)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	m["_id"] = id
	m["createdAt"] = now
	m["updatedAt"] = now
	if s.violatesUnique(id, m) {
		return nil, ErrDuplicate
	}
	s.docs[id] = m
	s.nextSeq++
	s.seq[id] = s.nextSeq
	return fromDoc[T](m)
}

func (s *Memory[T]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.docs[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return fromDoc[T](m)
}

func (s *Memory[T]) UpdateByID(ctx context.Context, id string, set bson.M) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.docs[oid]
	if !ok {
		return nil, ErrNotFound
	}
	next := bson.M{}
	for k, v := range cur {
		next[k] = v
	}
	for k, v := range set {
		next[k] = v
	}
	next["updatedAt"] = time.Now().UTC()
	if s.violatesUnique(oid, next) {
		return nil, ErrDuplicate
	}
	s.docs[oid] = next
	return fromDoc[T](next)
}

func (s *Memory[T]) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[oid]; !ok {
		return ErrNotFound
	}
	delete(s.docs, oid)
	delete(s.seq, oid)
	return nil
}

func (s *Memory[T]) List(ctx context.Context, q ListQuery) (*Page[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]bson.M, 0, len(s.docs))
	for _, m := range s.docs {
		if matchesFilters(m, q.Filters) {
			matched = append(matched, m)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		c := compareValues(matched[i][q.Sort], matched[j][q.Sort])
		if c == 0 {
			// deterministic tie-break mirroring insertion order
			c = compareInt64(s.seqOf(matched[i]), s.seqOf(matched[j]))
		}
		if q.Desc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(matched))
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + int64(q.Limit)
	if end > total {
		end = total
	}
	items := []*T{}
	for _, m := range matched[start:end] {
		item, err := fromDoc[T](m)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &Page[T]{
		TotalCount:  total,
		TotalPages:  TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Items:       items,
	}, nil
}

func (s *Memory[T]) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[primitive.ObjectID]*T{}
	for _, id := range ids {
		if m, ok := s.docs[id]; ok {
			item, err := fromDoc[T](m)
			if err != nil {
				return nil, err
			}
			out[id] = item
		}
	}
	return out, nil
}

func (s *Memory[T]) FindOneByField(ctx context.Context, field string, value interface{}) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.docs {
		if reflect.DeepEqual(m[field], value) {
			return fromDoc[T](m)
		}
	}
	return nil, ErrNotFound
}

func (s *Memory[T]) violatesUnique(self primitive.ObjectID, m bson.M) bool {
	for _, field := range s.unique {
		v, ok := m[field]
		if !ok {
			continue
		}
		for id, other := range s.docs {
			if id != self && reflect.DeepEqual(other[field], v) {
				return true
			}
		}
	}
	return false
}

func (s *Memory[T]) seqOf(m bson.M) int64 {
	if id, ok := m["_id"].(primitive.ObjectID); ok {
		return s.seq[id]
	}
	return 0
}

func matchesFilters(m bson.M, filters map[string]string) bool {
	for field, sub := range filters {
		v, ok := m[field].(string)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(v), strings.ToLower(sub)) {
			return false
		}
	}
	return true
}

// compareValues orders the bson value types the entities actually carry.
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return compareInt64(av.UnixNano(), bv.UnixNano())
		}
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			return compareInt64(int64(av), int64(bv))
		}
	case primitive.ObjectID:
		if bv, ok := b.(primitive.ObjectID); ok {
			return strings.Compare(av.Hex(), bv.Hex())
		}
	case int32:
		return compareFloats(float64(av), b)
	case int64:
		return compareFloats(float64(av), b)
	case float64:
		return compareFloats(av, b)
	}
	return 0
}

func compareFloats(a float64, b interface{}) int {
	var bv float64
	switch n := b.(type) {
	case int32:
		bv = float64(n)
	case int64:
		bv = float64(n)
	case float64:
		bv = n
	default:
		return 0
	}
	switch {
	case a < bv:
		return -1
	case a > bv:
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
