package devserver

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
)

var ErrNotFound = errors.New("not found")

// Table is an in-memory collection with server-assigned sequential ids.
type Table[T models.Entity] struct {
	mu     sync.RWMutex
	items  map[int64]T
	nextID int64
	setID  func(*T, int64)
}

func NewTable[T models.Entity](setID func(*T, int64)) *Table[T] {
	return &Table[T]{items: map[int64]T{}, nextID: 1, setID: setID}
}

// List returns the items ordered by id.
func (t *Table[T]) List() []T {
	return t.Filter(func(T) bool { return true })
}

func (t *Table[T]) Filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.items))
	for _, it := range t.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		return cmp.Compare(a.EntityID(), b.EntityID())
	})
	return out
}

func (t *Table[T]) Get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	it, ok := t.items[id]
	if !ok {
		return it, ErrNotFound
	}
	return it, nil
}

// Create ignores any id in item and assigns the next one.
func (t *Table[T]) Create(item T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setID(&item, t.nextID)
	t.items[t.nextID] = item
	t.nextID++
	return item
}

func (t *Table[T]) Update(id int64, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[id]; !ok {
		return item, ErrNotFound
	}
	t.setID(&item, id)
	t.items[id] = item
	return item, nil
}

func (t *Table[T]) Delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[id]; !ok {
		return ErrNotFound
	}
	delete(t.items, id)
	return nil
}
