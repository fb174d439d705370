package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/printflow/internal/kvstore"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
	"github.com/yukikurage/printflow/internal/services"
)

func newRouter(t *testing.T) (*gin.Engine, *services.OrderService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := services.NewOrderService(repository.NewLocalBackend(kvstore.NewMemoryStore()), logging.NewNop())
	r := gin.New()
	r.GET("/orders/:id", RequireOrder(orders), func(c *gin.Context) {
		order, ok := GetOrder(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, order.Title)
	})
	return r, orders
}

func TestRequireOrder_LoadsOrder(t *testing.T) {
	r, orders := newRouter(t)
	order, err := orders.Create(context.Background(), services.CreateOrderInput{Title: "Flyers", ClientName: "Alpha"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/"+order.ID, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Flyers", w.Body.String())
}

func TestRequireOrder_NotFound(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestRequireOrder_CorruptStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set("printflow-orders", "{not json"))
	orders := services.NewOrderService(repository.NewLocalBackend(kv), logging.NewNop())

	r := gin.New()
	r.GET("/orders/:id", RequireOrder(orders), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "STORAGE_CORRUPT")
}

func TestGetOrder_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetOrder(c)
	assert.False(t, ok)

	c.Set("order", "not an order")
	_, ok = GetOrder(c)
	assert.False(t, ok)

	c.Set("order", models.Order{ID: "1"})
	order, ok := GetOrder(c)
	assert.True(t, ok)
	assert.Equal(t, "1", order.ID)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := logging.New(&buf, logging.ParseLevel("info"))

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=request")
	assert.Contains(t, out, "path=/ok")
	assert.Contains(t, out, "level=ERROR msg=\"request failed\"")
}
