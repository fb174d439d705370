package repository

import (
	"context"

	"github.com/yukikurage/printflow/internal/logging"
)

// RemoteOpener connects the remote backend. A nil opener means no remote configuration.
type RemoteOpener func(ctx context.Context) (Backend, error)

// SelectBackend makes the process-wide storage decision once: the remote backend
// when it opens cleanly, otherwise local. There is no later fallback.
func SelectBackend(ctx context.Context, open RemoteOpener, local Backend, log logging.Logger) Backend {
	if open == nil {
		log.Info(ctx, "storage backend selected", "mode", local.Mode())
		return local
	}

	remote, err := open(ctx)
	if err != nil {
		log.Warn(ctx, "remote backend unavailable, using local storage", "error", err)
		return local
	}

	log.Info(ctx, "storage backend selected", "mode", remote.Mode())
	return remote
}
