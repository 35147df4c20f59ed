package database

import (
	"context"
	"reflect"
	"regexp"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository keeps documents in process. It honours the same filter subset
// and unique constraints as the Mongo collections and backs the test suites.
type MemoryRepository[T any] struct {
	mu     sync.RWMutex
	docs   map[primitive.ObjectID]bson.M
	order  []primitive.ObjectID
	unique [][]string
	now    func() time.Time
}

func NewMemoryRepository[T any](unique ...[]string) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		docs:   make(map[primitive.ObjectID]bson.M),
		unique: unique,
		now:    time.Now,
	}
}

func (r *MemoryRepository[T]) Find(_ context.Context, filter bson.M) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []T{}
	for _, id := range r.order {
		doc := r.docs[id]
		if !matches(doc, filter) {
			continue
		}
		v, err := fromDocument[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *MemoryRepository[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var zero T
	all, err := r.Find(ctx, filter)
	if err != nil {
		return zero, err
	}
	if len(all) == 0 {
		return zero, ErrNotFound
	}
	return all[0], nil
}

func (r *MemoryRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *MemoryRepository[T]) Insert(_ context.Context, doc T) (T, error) {
	var zero T
	m, err := ToDocument(doc)
	if err != nil {
		return zero, err
	}

	id := primitive.NewObjectID()
	now := r.now().UTC()
	m["_id"] = id
	m["createdAt"] = now
	m["updatedAt"] = now
	if m, err = ToDocument(m); err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.violatesUnique(id, m) {
		return zero, ErrDuplicateKey
	}
	r.docs[id] = m
	r.order = append(r.order, id)
	return fromDocument[T](m)
}

func (r *MemoryRepository[T]) Replace(_ context.Context, id primitive.ObjectID, doc T) (T, error) {
	var zero T
	m, err := ToDocument(doc)
	if err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.docs[id]
	if !ok {
		return zero, ErrNotFound
	}
	m["_id"] = id
	m["createdAt"] = current["createdAt"]
	m["updatedAt"] = r.now().UTC()
	return r.store(id, m)
}

func (r *MemoryRepository[T]) Update(_ context.Context, id primitive.ObjectID, set bson.M) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.docs[id]
	if !ok {
		return zero, ErrNotFound
	}
	merged := bson.M{}
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range set {
		if k == "_id" || k == "createdAt" {
			continue
		}
		merged[k] = v
	}
	merged["updatedAt"] = r.now().UTC()
	return r.store(id, merged)
}

func (r *MemoryRepository[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// store must be called with the write lock held.
func (r *MemoryRepository[T]) store(id primitive.ObjectID, m bson.M) (T, error) {
	var zero T
	m, err := ToDocument(m)
	if err != nil {
		return zero, err
	}
	if r.violatesUnique(id, m) {
		return zero, ErrDuplicateKey
	}
	r.docs[id] = m
	return fromDocument[T](m)
}

func (r *MemoryRepository[T]) violatesUnique(id primitive.ObjectID, m bson.M) bool {
	for _, keys := range r.unique {
		for otherID, other := range r.docs {
			if otherID == id {
				continue
			}
			same := true
			for _, k := range keys {
				a, okA := m[k]
				b, okB := other[k]
				if !okA || !okB || !equalValues(a, b) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func matches(doc bson.M, filter bson.M) bool {
	for key, want := range filter {
		if key == "$or" {
			if !matchesAny(doc, want) {
				return false
			}
			continue
		}

		got, present := doc[key]
		switch w := want.(type) {
		case primitive.Regex:
			if !present || !matchRegex(got, w) {
				return false
			}
		case bson.M:
			if !matchOperators(got, present, w) {
				return false
			}
		default:
			if !present || !equalOrContains(got, w) {
				return false
			}
		}
	}
	return true
}

func matchesAny(doc bson.M, clauses any) bool {
	switch cs := clauses.(type) {
	case []bson.M:
		for _, c := range cs {
			if matches(doc, c) {
				return true
			}
		}
	case bson.A:
		for _, c := range cs {
			if m, ok := c.(bson.M); ok && matches(doc, m) {
				return true
			}
		}
	}
	return false
}

func matchOperators(got any, present bool, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$in":
			if !present || !inList(got, arg) {
				return false
			}
		case "$ne":
			if present && equalOrContains(got, arg) {
				return false
			}
		case "$exists":
			want, _ := arg.(bool)
			if present != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func inList(got any, list any) bool {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if equalOrContains(got, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func matchRegex(got any, re primitive.Regex) bool {
	s, ok := got.(string)
	if !ok {
		return false
	}
	pattern := re.Pattern
	if re.Options == "i" {
		pattern = "(?i)" + pattern
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return compiled.MatchString(s)
}

// equalOrContains mirrors Mongo equality: an array field matches when any
// element equals the wanted scalar.
func equalOrContains(got, want any) bool {
	if equalValues(got, want) {
		return true
	}
	if arr, ok := got.(primitive.A); ok {
		for _, el := range arr {
			if equalValues(el, want) {
				return true
			}
		}
	}
	return false
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
