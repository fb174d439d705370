package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemoteBackend stores orders and chat in a shared database and pushes
// refreshed snapshots to subscribers whenever any writer publishes a change.
type RemoteBackend struct {
	db     *gorm.DB
	feed   ChangeFeed
	log    logging.Logger
	orders *Hub[models.Order]
	chat   *Hub[models.ChatMessage]

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewRemoteBackend starts listening on feed. The listener runs until Close.
func NewRemoteBackend(ctx context.Context, db *gorm.DB, feed ChangeFeed, log logging.Logger) (*RemoteBackend, error) {
	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	changes, err := feed.Listen(listenCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start change feed: %w", err)
	}

	b := &RemoteBackend{
		db:     db,
		feed:   feed,
		log:    log,
		orders: NewHub[models.Order](),
		chat:   NewHub[models.ChatMessage](),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go b.dispatch(listenCtx, changes)

	return b, nil
}

func (b *RemoteBackend) Mode() Mode {
	return ModeRemote
}

func (b *RemoteBackend) SubscribeOrders(ctx context.Context, fn func([]models.Order)) (Unsubscribe, error) {
	if b.closed.Load() {
		return nil, ErrBackendClosed
	}
	return b.orders.Subscribe(func() ([]models.Order, error) {
		return b.listOrders(ctx)
	}, fn)
}

func (b *RemoteBackend) SaveOrder(ctx context.Context, order models.Order) error {
	if b.closed.Load() {
		return ErrBackendClosed
	}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&order).Error
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	b.publish(ctx, constants.TopicOrders)
	return nil
}

func (b *RemoteBackend) DeleteOrder(ctx context.Context, id string) error {
	if b.closed.Load() {
		return ErrBackendClosed
	}
	result := b.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		b.publish(ctx, constants.TopicOrders)
	}
	return nil
}

func (b *RemoteBackend) SubscribeChat(ctx context.Context, fn func([]models.ChatMessage)) (Unsubscribe, error) {
	if b.closed.Load() {
		return nil, ErrBackendClosed
	}
	return b.chat.Subscribe(func() ([]models.ChatMessage, error) {
		return b.listChat(ctx)
	}, fn)
}

func (b *RemoteBackend) SendMessage(ctx context.Context, msg models.ChatMessage) error {
	if b.closed.Load() {
		return ErrBackendClosed
	}
	msg.Seq = 0
	if err := b.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	b.publish(ctx, constants.TopicChat)
	return nil
}

// Close stops the change listener. Open subscriptions stop receiving updates
// and later calls fail with ErrBackendClosed.
func (b *RemoteBackend) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		b.cancel()
		<-b.done
		err = b.feed.Close()
	})
	return err
}

func (b *RemoteBackend) listOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := b.db.WithContext(ctx).
		Order("order_number DESC").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (b *RemoteBackend) listChat(ctx context.Context) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := b.db.WithContext(ctx).
		Order("timestamp ASC").
		Order("seq ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// publish announces a change. The write is already durable, so a failed
// notification is logged rather than reported as a failed write.
func (b *RemoteBackend) publish(ctx context.Context, topic string) {
	if err := b.feed.Publish(ctx, topic); err != nil {
		b.log.Warn(ctx, "failed to publish change", "topic", topic, "error", err)
	}
}

// dispatch is the single listener goroutine: each change reloads the affected
// collection and delivers it to all of its subscribers.
func (b *RemoteBackend) dispatch(ctx context.Context, changes <-chan string) {
	defer close(b.done)

	for topic := range changes {
		var err error
		switch topic {
		case constants.TopicOrders:
			err = b.orders.Refresh(func() ([]models.Order, error) { return b.listOrders(ctx) })
		case constants.TopicChat:
			err = b.chat.Refresh(func() ([]models.ChatMessage, error) { return b.listChat(ctx) })
		default:
			b.log.Debug(ctx, "ignoring unknown change topic", "topic", topic)
		}
		if err != nil && ctx.Err() == nil {
			b.log.Error(ctx, "failed to refresh subscribers", "topic", topic, "error", err)
		}
	}
}

var _ Backend = (*RemoteBackend)(nil)
