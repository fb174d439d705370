package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOrderService_NumbersStartAt1001AndIncrease(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	var numbers []int
	for _, title := range []string{"Business cards", "Flyers", "Booklets", "Calendars"} {
		order, err := s.Create(ctx, createInput(title))
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	assert.Equal(t, []int{1001, 1002, 1003, 1004}, numbers)
}

func TestOrderService_NumberContinuesFromHighest(t *testing.T) {
	ctx := context.Background()
	seed := []models.Order{
		{ID: "a", OrderNumber: 1005, Title: "A", ClientName: "C", Status: models.OrderStatusNew, Priority: models.PriorityLow},
		{ID: "b", Title: "B", ClientName: "C", Status: models.OrderStatusNew, Priority: models.PriorityLow},
	}
	s := newTestOrderService(t, repository.WithSeedOrders(seed))

	order, err := s.Create(ctx, createInput("Posters"))
	require.NoError(t, err)
	assert.Equal(t, 1006, order.OrderNumber)
}

func TestOrderService_CreateAppliesDefaults(t *testing.T) {
	s := newTestOrderService(t)

	order, err := s.Create(context.Background(), createInput("  Business cards  "))
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "Business cards", order.Title)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, models.PriorityMedium, order.Priority)
	assert.Equal(t, jan10.UnixMilli(), order.CreatedAt)
}

func TestOrderService_SaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	order, err := s.Create(ctx, createInput("Flyers"))
	require.NoError(t, err)

	again, err := s.SaveOrder(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order, again)

	orders, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order, orders[0])
}

func TestOrderService_ReplaceKeepsNumberAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	order, err := s.Create(ctx, createInput("Flyers"))
	require.NoError(t, err)

	edited := order
	edited.Title = "Flyers A5"
	edited.OrderNumber = 1
	edited.CreatedAt = 42
	edited.PaperWeight = "130"

	saved, err := s.SaveOrder(ctx, edited)
	require.NoError(t, err)

	assert.Equal(t, order.OrderNumber, saved.OrderNumber)
	assert.Equal(t, order.CreatedAt, saved.CreatedAt)
	assert.Equal(t, "Flyers A5", saved.Title)
	assert.Equal(t, "130", saved.PaperWeight)
}

func TestOrderService_SaveRejectsInvalidOrder(t *testing.T) {
	s := newTestOrderService(t)

	_, err := s.SaveOrder(context.Background(), models.Order{
		Title:      "Flyers",
		ClientName: "Alpha LLC",
		Status:     "SHIPPED",
		Priority:   models.PriorityLow,
	})
	assert.ErrorIs(t, err, ErrInvalidOrder)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestOrderService_SaveAssignsAttachmentIDs(t *testing.T) {
	input := createInput("Posters")
	input.Attachments = []models.Attachment{{Name: "layout.pdf", Type: "application/pdf", Size: 4, Data: "data:application/pdf;base64,AAAA"}}

	order, err := newTestOrderService(t).Create(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, order.Attachments[0].ID)
}

func TestOrderService_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	_, err := s.Create(ctx, createInput("Flyers"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteOrder(ctx, "missing"))

	orders, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_GetAndMove(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	order, err := s.Create(ctx, createInput("Flyers"))
	require.NoError(t, err)

	moved, err := s.Move(ctx, order.ID, models.OrderStatusPrinting)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPrinting, moved.Status)
	assert.Equal(t, order.OrderNumber, moved.OrderNumber)

	byNumber, err := s.GetByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPrinting, byNumber.Status)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = s.Move(ctx, "missing", models.OrderStatusDone)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = s.Move(ctx, order.ID, "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestOrderService_ListAndBoard(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	cards, err := s.Create(ctx, CreateOrderInput{Title: "Business cards", ClientName: "Alpha LLC"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateOrderInput{Title: "Menu", ClientName: "Cafe Beta", Status: models.OrderStatusPrinting})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateOrderInput{Title: "Banner", ClientName: "Gamma", Status: models.OrderStatusDone})
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []int{1003, 1002, 1001}, orderNumbers(all))

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "title", query: "CARDS", want: []int{1001}},
		{name: "client", query: "beta", want: []int{1002}},
		{name: "order number", query: "1003", want: []int{1003}},
		{name: "no match", query: "poster", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, orderNumbers(got))
		})
	}

	board, err := s.Board(ctx, "")
	require.NoError(t, err)
	require.Len(t, board, len(models.OrderStatuses))
	for i, column := range board {
		assert.Equal(t, models.OrderStatuses[i], column.Status)
	}
	assert.Equal(t, []models.Order{cards}, board[0].Orders)
	assert.Empty(t, board[1].Orders)
	assert.Len(t, board[2].Orders, 1)
	assert.Len(t, board[4].Orders, 1)
}

func TestOrderService_LocalSubscribersSeeOwnWrites(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	var (
		mu         sync.Mutex
		deliveries [][]models.Order
	)
	unsubscribe, err := s.Subscribe(ctx, func(orders []models.Order) {
		mu.Lock()
		defer mu.Unlock()
		deliveries = append(deliveries, orders)
	})
	require.NoError(t, err)

	order, err := s.Create(ctx, createInput("Flyers"))
	require.NoError(t, err)
	require.NoError(t, s.DeleteOrder(ctx, order.ID))

	unsubscribe()
	unsubscribe()
	_, err = s.Create(ctx, createInput("Posters"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, deliveries, 3)
	assert.Empty(t, deliveries[0])
	assert.Len(t, deliveries[1], 1)
	assert.Empty(t, deliveries[2])
}

func TestOrderService_RemoteBackend(t *testing.T) {
	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.ChatMessage{}))

	backend, err := repository.NewRemoteBackend(ctx, db, repository.NewLocalFeed(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	s := NewOrderService(backend, logging.NewNop())

	for _, title := range []string{"Flyers", "Posters", "Stickers"} {
		_, err := s.Create(ctx, createInput(title))
		require.NoError(t, err)
	}

	orders, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1003, 1002, 1001}, orderNumbers(orders))
}

func TestOrderService_LocalSubscribeDeliversNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderService(t)

	for _, title := range []string{"Flyers", "Posters", "Stickers"} {
		_, err := s.Create(ctx, createInput(title))
		require.NoError(t, err)
	}

	var deliveries [][]int
	unsubscribe, err := s.Subscribe(ctx, func(orders []models.Order) {
		deliveries = append(deliveries, orderNumbers(orders))
	})
	require.NoError(t, err)
	defer unsubscribe()
	require.Len(t, deliveries, 1)
	assert.Equal(t, []int{1003, 1002, 1001}, deliveries[0])

	_, err = s.Create(ctx, createInput("Menus"))
	require.NoError(t, err)
	require.Len(t, deliveries, 2)
	assert.Equal(t, []int{1004, 1003, 1002, 1001}, deliveries[1])

	orders, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1004, 1003, 1002, 1001}, orderNumbers(orders))
}

func TestNextOrderNumber(t *testing.T) {
	assert.Equal(t, 1001, NextOrderNumber(nil))
	assert.Equal(t, 1, NextOrderNumber([]models.Order{{ID: "draft"}}))
	assert.Equal(t, 1043, NextOrderNumber([]models.Order{{OrderNumber: 1042}, {OrderNumber: 1001}}))
}
