package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// table is a concurrency-safe map of records that remembers insertion order,
// so records created in the same instant still list newest first.
type table[T any] struct {
	mu      sync.RWMutex
	rows    map[uuid.UUID]*row[T]
	nextSeq uint64
}

type row[T any] struct {
	value     T
	createdAt time.Time
	seq       uint64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]*row[T])}
}

// insert adds value under id. It reports false if id is already present.
func (t *table[T]) insert(id uuid.UUID, createdAt time.Time, value T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(id, createdAt, value)
}

func (t *table[T]) insertLocked(id uuid.UUID, createdAt time.Time, value T) bool {
	if _, exists := t.rows[id]; exists {
		return false
	}
	t.nextSeq++
	t.rows[id] = &row[T]{value: value, createdAt: createdAt, seq: t.nextSeq}
	return true
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// replace overwrites the value under id. It reports false if id is absent.
func (t *table[T]) replace(id uuid.UUID, value T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rows[id]
	if !ok {
		return false
	}
	r.value = value
	return true
}

func (t *table[T]) remove(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// list returns the values accepted by keep, newest first.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	matched := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r.value) {
			matched = append(matched, r)
		}
	}
	t.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.After(matched[j].createdAt)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]T, len(matched))
	for i, r := range matched {
		out[i] = r.value
	}
	return out
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
