package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

// UrgentOrders returns the unfinished orders due between today and
// DeadlineWindowDays from today, inclusive. Both dates are compared at midnight
// in now's location. Orders with an unparseable deadline are skipped.
func UrgentOrders(orders []models.Order, now time.Time) []models.Order {
	today := midnight(now)

	var urgent []models.Order
	for _, o := range orders {
		if o.Status == models.OrderStatusDone || o.Deadline == "" {
			continue
		}
		due, err := o.DeadlineDate(now.Location())
		if err != nil {
			continue
		}
		if days := daysBetween(today, due); days >= 0 && days <= constants.DeadlineWindowDays {
			urgent = append(urgent, o)
		}
	}
	return urgent
}

// DeadlineWatcher scans the order collection after it settles and posts one
// aggregate warning whenever the set of urgent orders changes.
type DeadlineWatcher struct {
	orders *OrderService
	center *NotificationCenter
	log    logging.Logger
	delay  time.Duration
	now    func() time.Time

	mu          sync.Mutex
	timer       *time.Timer
	latest      []models.Order
	lastHash    string
	stopped     bool
	unsubscribe repository.Unsubscribe
}

type DeadlineOption func(*DeadlineWatcher)

// WithScanDelay overrides the debounce delay.
func WithScanDelay(d time.Duration) DeadlineOption {
	return func(w *DeadlineWatcher) {
		w.delay = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) DeadlineOption {
	return func(w *DeadlineWatcher) {
		w.now = now
	}
}

func NewDeadlineWatcher(orders *OrderService, center *NotificationCenter, log logging.Logger, opts ...DeadlineOption) *DeadlineWatcher {
	w := &DeadlineWatcher{
		orders: orders,
		center: center,
		log:    log,
		delay:  constants.DeadlineScanDelay,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start subscribes to orders. Every delivery restarts the debounce timer.
func (w *DeadlineWatcher) Start(ctx context.Context) error {
	unsubscribe, err := w.orders.Subscribe(ctx, w.observe)
	if err != nil {
		return fmt.Errorf("failed to watch deadlines: %w", err)
	}

	w.mu.Lock()
	w.unsubscribe = unsubscribe
	w.mu.Unlock()
	return nil
}

// Stop releases the subscription and cancels a pending scan. A scan already
// running when Stop is called posts nothing.
func (w *DeadlineWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Check scans orders immediately and returns the notification it posted, if any.
func (w *DeadlineWatcher) Check(orders []models.Order) (models.Notification, bool) {
	urgent := UrgentOrders(orders, w.now())
	hash := urgentSetHash(urgent)

	w.mu.Lock()
	if w.stopped || hash == w.lastHash {
		w.mu.Unlock()
		return models.Notification{}, false
	}
	w.lastHash = hash
	w.mu.Unlock()

	if len(urgent) == 0 {
		return models.Notification{}, false
	}

	w.log.Info(context.Background(), "orders due soon", "count", len(urgent))
	return w.center.Push(
		models.NotificationWarning,
		"Deadlines approaching!",
		fmt.Sprintf("Heads up: %d orders are due within the next 48 hours.", len(urgent)),
	), true
}

func (w *DeadlineWatcher) observe(orders []models.Order) {
	if len(orders) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.latest = orders
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *DeadlineWatcher) fire() {
	w.mu.Lock()
	orders, stopped := w.latest, w.stopped
	w.mu.Unlock()

	if stopped {
		return
	}
	w.Check(orders)
}

func urgentSetHash(orders []models.Order) string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	slices.Sort(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, "\x00")))
	return hex.EncodeToString(sum[:])
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, both at midnight.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
