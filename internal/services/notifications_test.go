package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/printflow/internal/models"
)

func TestNotificationCenter(t *testing.T) {
	c := NewNotificationCenter()
	assert.NotNil(t, c.List())

	first := c.Push(models.NotificationSuccess, "New order", "Order is being sent...")
	c.Push(models.NotificationError, "Deleted", "Order deleted")

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0])
	assert.NotEmpty(t, first.ID)

	assert.True(t, c.Dismiss(first.ID))
	assert.False(t, c.Dismiss(first.ID))
	assert.Len(t, c.List(), 1)
}

func TestNotificationCenter_DropsOldest(t *testing.T) {
	c := NewNotificationCenter()
	c.limit = 3

	for i := 1; i <= 5; i++ {
		c.Push(models.NotificationInfo, fmt.Sprintf("n%d", i), "")
	}

	var titles []string
	for _, n := range c.List() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"n3", "n4", "n5"}, titles)
}
