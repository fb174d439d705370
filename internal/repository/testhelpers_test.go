package repository

import (
	"fmt"
	"sync"

	"github.com/yukikurage/printflow/internal/models"
)

// recorder collects subscription deliveries.
type recorder[T any] struct {
	mu         sync.Mutex
	deliveries [][]T
}

func (r *recorder[T]) record(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, items)
}

func (r *recorder[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deliveries)
}

func (r *recorder[T]) last() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.deliveries) == 0 {
		return nil
	}
	return r.deliveries[len(r.deliveries)-1]
}

func newOrder(n int) models.Order {
	return models.Order{
		ID:          fmt.Sprintf("order-%d", n),
		OrderNumber: n,
		Title:       fmt.Sprintf("Business cards %d", n),
		ClientName:  "Alpha LLC",
		Status:      models.OrderStatusNew,
		Priority:    models.PriorityMedium,
		CreatedAt:   1700000000000 + int64(n),
	}
}

func newMessage(id string, ts int64) models.ChatMessage {
	return models.ChatMessage{
		ID:        id,
		UserID:    "me",
		UserName:  "Alex",
		UserRole:  models.RoleManager,
		Text:      "message " + id,
		Timestamp: ts,
	}
}

func timestamps(messages []models.ChatMessage) []int64 {
	out := make([]int64, len(messages))
	for i, m := range messages {
		out[i] = m.Timestamp
	}
	return out
}

func orderIDs(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
