package services

import (
	"testing"
	"time"

	"github.com/yukikurage/printflow/internal/kvstore"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

// jan10 is "today" for date-sensitive tests.
var jan10 = time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newLocalBackend(t *testing.T, opts ...repository.LocalOption) *repository.LocalBackend {
	t.Helper()
	return repository.NewLocalBackend(kvstore.NewMemoryStore(), opts...)
}

func newTestOrderService(t *testing.T, opts ...repository.LocalOption) *OrderService {
	t.Helper()
	s := NewOrderService(newLocalBackend(t, opts...), logging.NewNop())
	s.now = fixedClock(jan10)
	return s
}

func createInput(title string) CreateOrderInput {
	return CreateOrderInput{
		Title:      title,
		ClientName: "Alpha LLC",
	}
}

func orderNumbers(orders []models.Order) []int {
	numbers := make([]int, 0, len(orders))
	for _, o := range orders {
		numbers = append(numbers, o.OrderNumber)
	}
	return numbers
}
