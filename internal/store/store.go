// Package store provides the generic in-memory entity collection the
// repositories are built on.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("store: record not found")
	ErrExists   = errors.New("store: record already exists")
)

// Record is implemented by value types kept in a Store. Methods return
// modified copies so the store never hands out its own state.
type Record[T any] interface {
	Key() string
	WithKey(id string) T
	Touched(at time.Time) T
	Clone() T
}

// Store is an insertion-ordered collection keyed by id. It is safe for
// concurrent use.
type Store[T Record[T]] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
	now   func() time.Time
}

func New[T Record[T]]() *Store[T] {
	return &Store[T]{
		items: make(map[string]T),
		now:   time.Now,
	}
}

// WithClock replaces the time source. Tests use it to pin timestamps.
func (s *Store[T]) WithClock(now func() time.Time) *Store[T] {
	s.now = now
	return s
}

func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Insert stores item, assigning a UUID when it has no id. An id that is
// already taken returns ErrExists and leaves the stored record untouched.
func (s *Store[T]) Insert(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Key() == "" {
		item = item.WithKey(uuid.New().String())
	}
	if _, exists := s.items[item.Key()]; exists {
		var zero T
		return zero, ErrExists
	}

	item = item.Touched(s.now()).Clone()
	s.order = append(s.order, item.Key())
	s.items[item.Key()] = item
	return item.Clone(), nil
}

// Update applies merge to the current value of id under the write lock. The
// id is preserved whatever merge returns and the timestamp is refreshed. An
// error from merge aborts the update and is returned unchanged.
func (s *Store[T]) Update(id string, merge func(current T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	current, ok := s.items[id]
	if !ok {
		return zero, ErrNotFound
	}

	next, err := merge(current.Clone())
	if err != nil {
		return zero, err
	}
	next = next.WithKey(id).Touched(s.now()).Clone()
	s.items[id] = next
	return next.Clone(), nil
}

func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == id })
	return true
}

func (s *Store[T]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, id := range s.order {
		if item := s.items[id]; pred(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

func (s *Store[T]) Find(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if item := s.items[id]; pred(item) {
			return item.Clone(), true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Any(pred func(T) bool) bool {
	_, ok := s.Find(pred)
	return ok
}
