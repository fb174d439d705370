package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/repository"
)

type subscribeFunc[T any] func(ctx context.Context, fn func([]T)) (repository.Unsubscribe, error)

// streamSnapshots writes every delivered snapshot as a server-sent event until
// the client goes away. A slow client only ever gets the latest snapshot.
func streamSnapshots[T any](c *gin.Context, event string, subscribe subscribeFunc[T]) {
	ctx := c.Request.Context()

	// Deliveries are serialised by the hub, so there is a single producer.
	latest := make(chan []T, 1)
	unsubscribe, err := subscribe(ctx, func(items []T) {
		select {
		case <-latest:
		default:
		}
		latest <- items
	})
	if err != nil {
		respondError(c, err, "Failed to subscribe")
		return
	}
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	keepAlive := time.NewTicker(constants.SSEKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case items := <-latest:
			if items == nil {
				items = []T{}
			}
			c.SSEvent(event, items)
			c.Writer.Flush()
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().UnixMilli())
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
