package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/dto"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/services"
)

// ListOptions returns the enumerations and catalogs used by the order form
func ListOptions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewOptionsResponse())
}

type NotificationHandler struct {
	center *services.NotificationCenter
}

func NewNotificationHandler(center *services.NotificationCenter) *NotificationHandler {
	return &NotificationHandler{center: center}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.center.List()})
}

func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	if !h.center.Dismiss(c.Param("id")) {
		apierrors.NotFound(c, "Notification not found")
		return
	}
	c.Status(http.StatusNoContent)
}
