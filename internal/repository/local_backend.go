package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/kvstore"
	"github.com/yukikurage/printflow/internal/models"
)

// LocalBackend keeps each collection as one JSON blob in a key/value store.
// It has no push mechanism: Subscribe delivers once and registers nothing, so
// writes from another process are only seen by the next Subscribe.
type LocalBackend struct {
	kv   kvstore.Store
	seed []models.Order

	// mu serialises read-modify-write cycles inside this process only.
	mu sync.Mutex
}

type LocalOption func(*LocalBackend)

// WithSeedOrders makes SubscribeOrders return orders while nothing is stored yet.
func WithSeedOrders(orders []models.Order) LocalOption {
	return func(b *LocalBackend) {
		b.seed = slices.Clone(orders)
	}
}

func NewLocalBackend(kv kvstore.Store, opts ...LocalOption) *LocalBackend {
	b := &LocalBackend{kv: kv}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *LocalBackend) Mode() Mode {
	return ModeLocal
}

func (b *LocalBackend) SubscribeOrders(_ context.Context, fn func([]models.Order)) (Unsubscribe, error) {
	b.mu.Lock()
	orders, err := b.readOrders()
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	models.SortOrders(orders)
	fn(orders)
	return func() {}, nil
}

func (b *LocalBackend) SaveOrder(_ context.Context, order models.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	orders, err := b.readOrders()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(orders, func(o models.Order) bool { return o.ID == order.ID })
	if idx >= 0 {
		orders[idx] = order
	} else {
		orders = append(orders, order)
	}

	return b.write(constants.KeyOrders, orders)
}

func (b *LocalBackend) DeleteOrder(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	orders, err := b.readOrders()
	if err != nil {
		return err
	}

	filtered := slices.DeleteFunc(orders, func(o models.Order) bool { return o.ID == id })
	if len(filtered) == len(orders) {
		return nil
	}
	return b.write(constants.KeyOrders, filtered)
}

func (b *LocalBackend) SubscribeChat(_ context.Context, fn func([]models.ChatMessage)) (Unsubscribe, error) {
	b.mu.Lock()
	messages, err := b.readChat()
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// Stored order is arrival order, so a stable sort keeps ties in arrival order.
	slices.SortStableFunc(messages, func(a, b models.ChatMessage) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	fn(messages)
	return func() {}, nil
}

func (b *LocalBackend) SendMessage(_ context.Context, msg models.ChatMessage) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	messages, err := b.readChat()
	if err != nil {
		return err
	}
	msg.Seq = 0
	return b.write(constants.KeyChat, append(messages, msg))
}

// GetProfile implements ProfileRepository.
func (b *LocalBackend) GetProfile() (models.User, error) {
	raw, ok, err := b.kv.Get(constants.KeyProfile)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if !ok {
		return models.DefaultUser, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: profile: %v", ErrCorruptSnapshot, err)
	}
	return user, nil
}

// SetProfile implements ProfileRepository.
func (b *LocalBackend) SetProfile(user models.User) error {
	return b.write(constants.KeyProfile, user)
}

func (b *LocalBackend) Close() error {
	return nil
}

func (b *LocalBackend) readOrders() ([]models.Order, error) {
	orders, found, err := readCollection[models.Order](b.kv, constants.KeyOrders)
	if err != nil {
		return nil, err
	}
	if !found {
		return append([]models.Order{}, b.seed...), nil
	}
	return orders, nil
}

func (b *LocalBackend) readChat() ([]models.ChatMessage, error) {
	messages, _, err := readCollection[models.ChatMessage](b.kv, constants.KeyChat)
	return messages, err
}

func (b *LocalBackend) write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := b.kv.Set(key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func readCollection[T any](kv kvstore.Store, key string) ([]T, bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return []T{}, false, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

var (
	_ Backend           = (*LocalBackend)(nil)
	_ ProfileRepository = (*LocalBackend)(nil)
)
