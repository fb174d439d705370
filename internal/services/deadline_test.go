package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

func dueOrder(id, deadline string, status models.OrderStatus) models.Order {
	return models.Order{
		ID:         id,
		Title:      "Order " + id,
		ClientName: "Alpha LLC",
		Status:     status,
		Priority:   models.PriorityMedium,
		Deadline:   deadline,
	}
}

func TestUrgentOrders(t *testing.T) {
	tests := []struct {
		name  string
		order models.Order
		want  bool
	}{
		{name: "due today", order: dueOrder("today", "2024-01-10", models.OrderStatusNew), want: true},
		{name: "due in two days", order: dueOrder("plus2", "2024-01-12", models.OrderStatusPrinting), want: true},
		{name: "due in three days", order: dueOrder("plus3", "2024-01-13", models.OrderStatusNew), want: false},
		{name: "overdue", order: dueOrder("minus1", "2024-01-09", models.OrderStatusNew), want: false},
		{name: "done today", order: dueOrder("done", "2024-01-10", models.OrderStatusDone), want: false},
		{name: "no deadline", order: dueOrder("none", "", models.OrderStatusNew), want: false},
		{name: "unparseable", order: dueOrder("bad", "10.01.2024", models.OrderStatusNew), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UrgentOrders([]models.Order{tt.order}, jan10)
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestUrgentOrders_ComparesCalendarDays(t *testing.T) {
	lateEvening := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC)
	orders := []models.Order{
		dueOrder("plus2", "2024-01-12", models.OrderStatusNew),
		dueOrder("plus3", "2024-01-13", models.OrderStatusNew),
	}

	got := UrgentOrders(orders, lateEvening)
	require.Len(t, got, 1)
	assert.Equal(t, "plus2", got[0].ID)
}

func newTestWatcher(t *testing.T, orders []models.Order) (*DeadlineWatcher, *OrderService, *NotificationCenter) {
	t.Helper()

	s := newTestOrderService(t, repository.WithSeedOrders(orders))
	center := NewNotificationCenter()
	w := NewDeadlineWatcher(s, center, logging.NewNop(),
		WithScanDelay(10*time.Millisecond),
		WithClock(fixedClock(jan10)),
	)
	t.Cleanup(w.Stop)
	return w, s, center
}

func TestDeadlineWatcher_PostsOneAggregateWarning(t *testing.T) {
	w, _, center := newTestWatcher(t, []models.Order{
		dueOrder("a", "2024-01-10", models.OrderStatusNew),
		dueOrder("b", "2024-01-11", models.OrderStatusPrepress),
		dueOrder("c", "2024-01-20", models.OrderStatusNew),
	})
	require.NoError(t, w.Start(context.Background()))

	require.Eventually(t, func() bool { return len(center.List()) == 1 }, time.Second, 5*time.Millisecond)

	n := center.List()[0]
	assert.Equal(t, models.NotificationWarning, n.Type)
	assert.Contains(t, n.Message, "2 orders")
}

func TestDeadlineWatcher_RefiresOnlyWhenUrgentSetChanges(t *testing.T) {
	ctx := context.Background()
	w, s, center := newTestWatcher(t, []models.Order{
		dueOrder("a", "2024-01-10", models.OrderStatusNew),
	})
	require.NoError(t, w.Start(ctx))
	require.Eventually(t, func() bool { return len(center.List()) == 1 }, time.Second, 5*time.Millisecond)

	_, err := s.Create(ctx, CreateOrderInput{Title: "Later", ClientName: "Beta", Deadline: "2024-02-01"})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, center.List(), 1)

	_, err = s.Create(ctx, CreateOrderInput{Title: "Soon", ClientName: "Beta", Deadline: "2024-01-12"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(center.List()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, center.List()[1].Message, "2 orders")
}

func TestDeadlineWatcher_IgnoresEmptyCollection(t *testing.T) {
	w, _, center := newTestWatcher(t, nil)
	require.NoError(t, w.Start(context.Background()))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, center.List())
}

func TestDeadlineWatcher_Check(t *testing.T) {
	w, _, center := newTestWatcher(t, nil)
	orders := []models.Order{dueOrder("a", "2024-01-11", models.OrderStatusNew)}

	_, posted := w.Check(orders)
	assert.True(t, posted)
	_, posted = w.Check(orders)
	assert.False(t, posted)

	_, posted = w.Check(nil)
	assert.False(t, posted)
	_, posted = w.Check(orders)
	assert.True(t, posted)

	assert.Len(t, center.List(), 2)
}

func TestDeadlineWatcher_StopSilencesPendingScan(t *testing.T) {
	w, _, center := newTestWatcher(t, []models.Order{
		dueOrder("a", "2024-01-10", models.OrderStatusNew),
	})
	require.NoError(t, w.Start(context.Background()))
	w.Stop()

	// A scan that was already running when Stop returned.
	w.fire()
	_, posted := w.Check([]models.Order{dueOrder("b", "2024-01-11", models.OrderStatusNew)})
	assert.False(t, posted)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, center.List())
}
