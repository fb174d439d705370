package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("invalid order")
)

// OrderService is the order façade over the selected backend. It assigns
// order numbers and keeps createdAt immutable across replaces.
//
// Order numbers are computed from a snapshot read before the write. The read and
// the write are not atomic, so two remote writers creating orders at the same time
// can be assigned the same number.
type OrderService struct {
	backend repository.Backend
	log     logging.Logger
	now     func() time.Time

	// echo re-delivers after this process's own writes when the backend cannot push.
	echo *repository.Hub[models.Order]
}

func NewOrderService(backend repository.Backend, log logging.Logger) *OrderService {
	return &OrderService{
		backend: backend,
		log:     log,
		now:     time.Now,
		echo:    repository.NewHub[models.Order](),
	}
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	Title       string
	ClientName  string
	Description string
	Status      models.OrderStatus
	Priority    models.Priority
	Deadline    string
	PaperWeight string
	PaperType   string
	Format      string
	ColorMode   string
	Attachments []models.Attachment
}

// BoardColumn is one workflow stage of the board.
type BoardColumn struct {
	Status models.OrderStatus `json:"status"`
	Label  string             `json:"label"`
	Orders []models.Order     `json:"orders"`
}

// Mode reports which backend serves orders.
func (s *OrderService) Mode() repository.Mode {
	return s.backend.Mode()
}

// Subscribe delivers the full order collection on every change.
func (s *OrderService) Subscribe(ctx context.Context, fn func([]models.Order)) (repository.Unsubscribe, error) {
	if s.backend.Mode() == repository.ModeLocal {
		return s.echo.Subscribe(func() ([]models.Order, error) {
			return s.Snapshot(ctx)
		}, fn)
	}
	return s.backend.SubscribeOrders(ctx, fn)
}

// Snapshot returns the current collection through one subscribe round trip.
func (s *OrderService) Snapshot(ctx context.Context) ([]models.Order, error) {
	var (
		first    sync.Once
		snapshot []models.Order
	)
	unsubscribe, err := s.backend.SubscribeOrders(ctx, func(orders []models.Order) {
		first.Do(func() { snapshot = orders })
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	unsubscribe()

	if snapshot == nil {
		snapshot = []models.Order{}
	}
	return snapshot, nil
}

// SaveOrder upserts order. A new order gets the next order number; an existing
// one keeps its stored number and creation time.
func (s *OrderService) SaveOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if err := order.Validate(); err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	orders, err := s.Snapshot(ctx)
	if err != nil {
		return models.Order{}, err
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if idx := slices.IndexFunc(orders, func(o models.Order) bool { return o.ID == order.ID }); idx >= 0 {
		order.OrderNumber = orders[idx].OrderNumber
		order.CreatedAt = orders[idx].CreatedAt
	} else {
		order.OrderNumber = NextOrderNumber(orders)
		if order.CreatedAt == 0 {
			order.CreatedAt = s.now().UnixMilli()
		}
	}
	for i := range order.Attachments {
		if order.Attachments[i].ID == "" {
			order.Attachments[i].ID = uuid.NewString()
		}
	}

	if err := s.backend.SaveOrder(ctx, order); err != nil {
		return models.Order{}, err
	}
	s.afterWrite(ctx)

	return order, nil
}

// DeleteOrder removes the order. Unknown IDs are a no-op.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.backend.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx)
	return nil
}

// Create builds a new order with defaults and saves it.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (models.Order, error) {
	if input.Status == "" {
		input.Status = models.OrderStatusNew
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	return s.SaveOrder(ctx, models.Order{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		ClientName:  strings.TrimSpace(input.ClientName),
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedAt:   s.now().UnixMilli(),
		Deadline:    input.Deadline,
		PaperWeight: input.PaperWeight,
		PaperType:   input.PaperType,
		Format:      input.Format,
		ColorMode:   input.ColorMode,
		Attachments: input.Attachments,
	})
}

// Move replaces the order with a copy in the given stage.
func (s *OrderService) Move(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: %w: %q", ErrInvalidOrder, models.ErrInvalidStatus, status)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	order.Status = status

	return s.SaveOrder(ctx, order)
}

// Get returns the order with the given ID
func (s *OrderService) Get(ctx context.Context, id string) (models.Order, error) {
	return s.find(ctx, func(o models.Order) bool { return o.ID == id })
}

// GetByNumber returns the order with the given order number
func (s *OrderService) GetByNumber(ctx context.Context, number int) (models.Order, error) {
	return s.find(ctx, func(o models.Order) bool { return o.OrderNumber == number })
}

// List returns orders matching query, newest order number first.
// The query matches title, client name and order number, case-insensitively.
func (s *OrderService) List(ctx context.Context, query string) ([]models.Order, error) {
	orders, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if matchesQuery(o, query) {
			filtered = append(filtered, o)
		}
	}
	models.SortOrders(filtered)

	return filtered, nil
}

// Board groups the matching orders into one column per stage, in workflow order.
func (s *OrderService) Board(ctx context.Context, query string) ([]BoardColumn, error) {
	orders, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}

	columns := make([]BoardColumn, 0, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		column := BoardColumn{Status: status, Label: status.Label(), Orders: []models.Order{}}
		for _, o := range orders {
			if o.Status == status {
				column.Orders = append(column.Orders, o)
			}
		}
		columns = append(columns, column)
	}

	return columns, nil
}

// NextOrderNumber is max(orderNumber)+1, or the first number for an empty collection.
func NextOrderNumber(orders []models.Order) int {
	if len(orders) == 0 {
		return constants.FirstOrderNumber
	}

	highest := 0
	for _, o := range orders {
		highest = max(highest, o.OrderNumber)
	}
	return highest + 1
}

func (s *OrderService) find(ctx context.Context, match func(models.Order) bool) (models.Order, error) {
	orders, err := s.Snapshot(ctx)
	if err != nil {
		return models.Order{}, err
	}

	idx := slices.IndexFunc(orders, match)
	if idx < 0 {
		return models.Order{}, ErrOrderNotFound
	}
	return orders[idx], nil
}

func (s *OrderService) afterWrite(ctx context.Context) {
	if s.backend.Mode() != repository.ModeLocal {
		return
	}
	if err := s.echo.Refresh(func() ([]models.Order, error) { return s.Snapshot(ctx) }); err != nil {
		s.log.Warn(ctx, "failed to refresh order subscribers", "error", err)
	}
}

func matchesQuery(o models.Order, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(o.Title), query) ||
		strings.Contains(strings.ToLower(o.ClientName), query) ||
		strings.Contains(strconv.Itoa(o.OrderNumber), query)
}
