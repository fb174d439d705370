package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/app"
	"github.com/yukikurage/printflow/internal/config"
	"github.com/yukikurage/printflow/internal/handlers"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pick the storage backend and build services
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn(context.Background(), "shutdown", "error", err)
		}
	}()

	if err := a.Deadlines.Start(ctx); err != nil {
		log.Warn(ctx, "deadline watcher not started", "error", err)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: newRouter(a, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "server starting", "addr", cfg.HTTPAddr, "mode", a.Mode())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server stopped", "error", err)
	}
}

func newRouter(a *app.App, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(a.Orders, a.Notifications)
	chatHandler := handlers.NewChatHandler(a.Chat)
	profileHandler := handlers.NewProfileHandler(a.Profiles)
	notificationHandler := handlers.NewNotificationHandler(a.Notifications)
	assistHandler := handlers.NewAssistHandler(a.AI)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"mode":   a.Mode(),
		})
	})

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/stream", orderHandler.StreamOrders)
			orders.GET("/:id", middleware.RequireOrder(a.Orders), orderHandler.GetOrder)
			orders.PUT("/:id", middleware.RequireOrder(a.Orders), orderHandler.UpdateOrder)
			orders.PATCH("/:id/status", middleware.RequireOrder(a.Orders), orderHandler.MoveOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
			orders.GET("/:id/work-order", middleware.RequireOrder(a.Orders), orderHandler.WorkOrder)
		}
		api.GET("/board", orderHandler.Board)

		chat := api.Group("/chat")
		{
			chat.GET("", chatHandler.ListMessages)
			chat.POST("", chatHandler.SendMessage)
			chat.GET("/stream", chatHandler.StreamMessages)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.POST("/role", profileHandler.SwitchRole)
		}
		api.GET("/team", profileHandler.ListTeam)
		api.GET("/options", handlers.ListOptions)

		api.GET("/notifications", notificationHandler.ListNotifications)
		api.DELETE("/notifications/:id", notificationHandler.DismissNotification)

		assist := api.Group("/assist")
		{
			assist.POST("/description", assistHandler.GenerateDescription)
			assist.POST("/specs", assistHandler.SuggestSpecs)
		}
	}

	return r
}
