package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/dto"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/middleware"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/services"
	"github.com/yukikurage/printflow/internal/utils"
	"github.com/yukikurage/printflow/internal/workorder"
)

type OrderHandler struct {
	orders        *services.OrderService
	notifications *services.NotificationCenter
	now           func() time.Time
}

func NewOrderHandler(orders *services.OrderService, notifications *services.NotificationCenter) *OrderHandler {
	return &OrderHandler{
		orders:        orders,
		notifications: notifications,
		now:           time.Now,
	}
}

// ListOrders returns orders matching ?q=, newest order number first.
// ?limit= and ?page= select a page.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Query(constants.SearchQueryParam))
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}

	resp := dto.OrderListResponse{
		Orders: orders,
		Total:  len(orders),
		Mode:   string(h.orders.Mode()),
	}
	if p := utils.GetPaginationParams(c); p.Limit > 0 {
		resp.Orders = utils.Paginate(orders, p)
		resp.Pagination = &utils.PaginationResponse{Page: p.Page, Limit: p.Limit, Total: len(orders)}
	}

	c.JSON(http.StatusOK, resp)
}

// Board returns the orders grouped into workflow columns
func (h *OrderHandler) Board(c *gin.Context) {
	columns, err := h.orders.Board(c.Request.Context(), c.Query(constants.SearchQueryParam))
	if err != nil {
		respondError(c, err, "Failed to fetch board")
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{
		Columns: columns,
		Mode:    string(h.orders.Mode()),
	})
}

// GetOrder returns the order loaded by RequireOrder
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := middleware.GetOrder(c)
	if !ok {
		apierrors.InternalError(c, "Order not found in context")
		return
	}

	c.JSON(http.StatusOK, order)
}

// CreateOrder creates an order and assigns the next order number
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req.ToCreateOrderInput())
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}

	h.notifications.Push(models.NotificationSuccess, "New order",
		fmt.Sprintf("Order %s was created.", workorder.Number(order.OrderNumber)))
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder replaces every editable field of the order
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	current, ok := middleware.GetOrder(c)
	if !ok {
		apierrors.InternalError(c, "Order not found in context")
		return
	}

	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orders.SaveOrder(c.Request.Context(), req.ApplyTo(current))
	if err != nil {
		respondError(c, err, "Failed to update order")
		return
	}

	h.notifications.Push(models.NotificationSuccess, "Saved",
		fmt.Sprintf("Order %s was updated.", workorder.Number(order.OrderNumber)))
	c.JSON(http.StatusOK, order)
}

// MoveOrder changes the workflow stage of the order
func (h *OrderHandler) MoveOrder(c *gin.Context) {
	current, ok := middleware.GetOrder(c)
	if !ok {
		apierrors.InternalError(c, "Order not found in context")
		return
	}

	var req dto.MoveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orders.Move(c.Request.Context(), current.ID, req.Status)
	if err != nil {
		respondError(c, err, "Failed to move order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes the order. Deleting an unknown order succeeds.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order")
		return
	}

	h.notifications.Push(models.NotificationError, "Deleted", "The order was deleted.")
	c.Status(http.StatusNoContent)
}

// WorkOrder renders the printable work sheet as plain text
func (h *OrderHandler) WorkOrder(c *gin.Context) {
	order, ok := middleware.GetOrder(c)
	if !ok {
		apierrors.InternalError(c, "Order not found in context")
		return
	}

	c.String(http.StatusOK, workorder.Render(order, h.now()))
}

// StreamOrders pushes the full order list as server-sent events
func (h *OrderHandler) StreamOrders(c *gin.Context) {
	streamSnapshots[models.Order](c, "orders", h.orders.Subscribe)
}
