package repository

import (
	"slices"
	"sync"
)

// Hub fans full-collection snapshots out to subscribers.
// deliverMu serialises load+deliver sequences so subscribers never observe an
// older snapshot after a newer one; callbacks must not subscribe from inside a delivery.
type Hub[T any] struct {
	deliverMu sync.Mutex

	mu     sync.Mutex
	nextID int
	subs   map[int]func([]T)
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]func([]T))}
}

func (h *Hub[T]) Subscribe(load func() ([]T, error), fn func([]T)) (Unsubscribe, error) {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	snapshot, err := load()
	if err != nil {
		return nil, err
	}
	fn(slices.Clone(snapshot))

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}, nil
}

// Refresh reloads the collection and delivers it to every current subscriber.
func (h *Hub[T]) Refresh(load func() ([]T, error)) error {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	subs := h.subscribers()
	if len(subs) == 0 {
		return nil
	}

	snapshot, err := load()
	if err != nil {
		return err
	}
	for _, fn := range subs {
		fn(slices.Clone(snapshot))
	}
	return nil
}

func (h *Hub[T]) subscribers() []func([]T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	subs := make([]func([]T), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, h.subs[id])
	}
	return subs
}

func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
