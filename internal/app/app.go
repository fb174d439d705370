// Package app assembles the storage backend and services from configuration.
// Both the HTTP server and the CLI start from New.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/printflow/internal/config"
	"github.com/yukikurage/printflow/internal/database"
	"github.com/yukikurage/printflow/internal/kvstore"
	"github.com/yukikurage/printflow/internal/logging"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/repository"
	"github.com/yukikurage/printflow/internal/services"
	"gorm.io/gorm"
)

const (
	LocalStoreFile   = "file"
	LocalStoreSQLite = "sqlite"
)

type App struct {
	Config  *config.Config
	Log     logging.Logger
	Backend repository.Backend

	Orders        *services.OrderService
	Chat          *services.ChatService
	Profiles      *services.ProfileService
	AI            *services.AIService
	Notifications *services.NotificationCenter
	Deadlines     *services.DeadlineWatcher

	closers []func() error
}

// New opens the local store, picks the backend once and builds the services.
// A remote backend that fails to open is logged and replaced by local storage.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	kv, err := a.openLocalStore()
	if err != nil {
		return nil, err
	}

	var opts []repository.LocalOption
	if cfg.SeedDemoData {
		opts = append(opts, repository.WithSeedOrders(models.DemoOrders(time.Now())))
	}
	local := repository.NewLocalBackend(kv, opts...)

	var opener repository.RemoteOpener
	if cfg.RemoteConfigured() {
		opener = a.openRemote
	}
	a.Backend = repository.SelectBackend(ctx, opener, local, log)
	a.closers = append(a.closers, a.Backend.Close)

	var policy services.RolePolicy = services.AllowAll
	if cfg.DirectorPINHash != "" {
		policy = services.PINPolicy(cfg.DirectorPINHash)
	}

	a.Orders = services.NewOrderService(a.Backend, log)
	a.Chat = services.NewChatService(a.Backend, local, log)
	a.Profiles = services.NewProfileService(local, policy)
	a.AI = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, log)
	a.Notifications = services.NewNotificationCenter()
	a.Deadlines = services.NewDeadlineWatcher(a.Orders, a.Notifications, log)

	return a, nil
}

// Mode reports the backend chosen at startup.
func (a *App) Mode() repository.Mode {
	return a.Backend.Mode()
}

// Close releases the backend and stores in reverse order of opening.
func (a *App) Close() error {
	a.Deadlines.Stop()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) openLocalStore() (kvstore.Store, error) {
	switch a.Config.LocalStore {
	case LocalStoreSQLite:
		store, err := kvstore.OpenSQLite(a.Config.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case LocalStoreFile, "":
		return kvstore.NewFileStore(a.Config.LocalPath), nil
	default:
		return nil, fmt.Errorf("unsupported local store %q", a.Config.LocalStore)
	}
}

// openRemote connects, migrates and starts the change feed. Postgres gets
// cross-process LISTEN/NOTIFY; other drivers only see writes from this process.
func (a *App) openRemote(ctx context.Context) (repository.Backend, error) {
	db, err := database.Connect(a.Config)
	if err != nil {
		return nil, err
	}

	backend, err := a.startRemote(ctx, db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a.closers = append(a.closers, func() error { return database.Close(db) })
	return backend, nil
}

func (a *App) startRemote(ctx context.Context, db *gorm.DB) (repository.Backend, error) {
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var feed repository.ChangeFeed
	if a.Config.DBDriver == database.DriverPostgres {
		feed = repository.NewPostgresFeed(database.DSN(a.Config), db, a.Log)
	} else {
		feed = repository.NewLocalFeed()
	}

	return repository.NewRemoteBackend(ctx, db, feed, a.Log)
}
