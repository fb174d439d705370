package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yukikurage/printflow/internal/constants"
	"github.com/yukikurage/printflow/internal/logging"
	"gorm.io/gorm"
)

// PostgresFeed pushes changes between processes with LISTEN/NOTIFY.
// Notifications are sent through the shared gorm pool; each Listen holds a
// dedicated pgx connection.
type PostgresFeed struct {
	dsn string
	db  *gorm.DB
	log logging.Logger
}

func NewPostgresFeed(dsn string, db *gorm.DB, log logging.Logger) *PostgresFeed {
	return &PostgresFeed{
		dsn: dsn,
		db:  db,
		log: log,
	}
}

func (f *PostgresFeed) Publish(ctx context.Context, topic string) error {
	return f.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", constants.ChangeChannel, topic).Error
}

func (f *PostgresFeed) Listen(ctx context.Context) (<-chan string, error) {
	conn, err := pgx.Connect(ctx, f.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{constants.ChangeChannel}.Sanitize()); err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("failed to listen on %s: %w", constants.ChangeChannel, err)
	}

	ch := make(chan string, feedBuffer)
	go func() {
		defer close(ch)
		defer conn.Close(context.Background())

		for {
			n, err := conn.WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					// No reconnect: subscribers keep their last snapshot.
					f.log.Error(ctx, "change feed stopped", "error", err)
				}
				return
			}
			select {
			case ch <- n.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// Close is a no-op; listen connections are released when their context ends.
func (f *PostgresFeed) Close() error {
	return nil
}

var _ ChangeFeed = (*PostgresFeed)(nil)
