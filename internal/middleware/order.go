package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/constants"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
	"github.com/yukikurage/printflow/internal/services"
)

// RequireOrder loads the order named by the :id parameter into the context
func RequireOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrOrderNotFound):
				apierrors.NotFound(c, "Order not found")
			case errors.Is(err, repository.ErrCorruptSnapshot):
				apierrors.StorageCorrupt(c)
			default:
				apierrors.InternalError(c, "Failed to load order")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrder, order)
		c.Next()
	}
}

// GetOrder retrieves the order loaded by RequireOrder
func GetOrder(c *gin.Context) (models.Order, bool) {
	value, exists := c.Get(constants.ContextKeyOrder)
	if !exists {
		return models.Order{}, false
	}

	order, ok := value.(models.Order)
	return order, ok
}
