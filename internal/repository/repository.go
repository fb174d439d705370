package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/printflow/internal/models"
)

// Mode names the storage backend a process runs with.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

var (
	// ErrCorruptSnapshot is returned when a persisted local collection cannot be decoded.
	ErrCorruptSnapshot = errors.New("stored snapshot is corrupt")
	// ErrBackendClosed is returned by operations on a closed backend.
	ErrBackendClosed = errors.New("backend is closed")
)

// Unsubscribe releases a subscription. Calling it more than once is safe.
type Unsubscribe func()

// Backend is the storage capability set behind the persistence façade.
// Subscribe callbacks always receive the full collection, never a diff, and the
// first delivery happens before Subscribe returns.
type Backend interface {
	// SubscribeOrders delivers orders to fn whenever the collection changes.
	SubscribeOrders(ctx context.Context, fn func([]models.Order)) (Unsubscribe, error)

	// SaveOrder inserts the order or fully replaces the stored record with the same ID.
	SaveOrder(ctx context.Context, order models.Order) error

	// DeleteOrder removes the order by ID. Missing IDs are a no-op.
	DeleteOrder(ctx context.Context, id string) error

	// SubscribeChat delivers all messages ordered by timestamp, oldest first.
	SubscribeChat(ctx context.Context, fn func([]models.ChatMessage)) (Unsubscribe, error)

	// SendMessage appends a message. Messages are never updated or deleted.
	SendMessage(ctx context.Context, msg models.ChatMessage) error

	Mode() Mode

	Close() error
}

// ProfileRepository stores the single local profile.
type ProfileRepository interface {
	// GetProfile returns the stored profile, or models.DefaultUser if none is stored.
	GetProfile() (models.User, error)

	SetProfile(user models.User) error
}
