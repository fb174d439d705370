package services

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/models"
)

// NotificationCenter keeps the most recent notifications in memory, newest last.
type NotificationCenter struct {
	mu    sync.Mutex
	items []models.Notification
	limit int
	now   func() time.Time
}

func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{
		limit: constants.MaxNotifications,
		now:   time.Now,
	}
}

// Push records a notification and returns it. The oldest entries are dropped past the limit.
func (c *NotificationCenter) Push(typ models.NotificationType, title, message string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(c.items, n)
	if over := len(c.items) - c.limit; over > 0 {
		c.items = slices.Delete(c.items, 0, over)
	}
	return n
}

func (c *NotificationCenter) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Notification{}, c.items...)
}

// Dismiss removes the notification and reports whether it existed.
func (c *NotificationCenter) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(n models.Notification) bool { return n.ID == id })
	return len(c.items) != before
}
