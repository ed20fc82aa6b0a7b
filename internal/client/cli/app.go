package cli

import (
	"context"
	"database/sql"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/config"
	"github.com/andiamoid/andiamo-admin/internal/client/session"
	"github.com/andiamoid/andiamo-admin/internal/client/store"
	"github.com/andiamoid/andiamo-admin/internal/logging"
)

// App bundles everything a command needs: config, the API client and the
// restored session. Commands receive it fully initialized.
type App struct {
	Cfg     *config.Config
	Log     logging.Logger
	Client  api.Client
	Session *session.Manager

	db *sql.DB
}

// NewApp opens the local store, builds the API client for the configured
// auth mode and restores the session. Every CLI invocation is one process
// start, so the restore runs here, before the first command executes.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	client, err := api.NewHTTPClient(cfg.APIBaseURL, cfg.AuthMode, cfg.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	kv := store.NewKV(db, log)
	mgr := session.NewManager(client, kv, log)
	if err := mgr.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{Cfg: cfg, Log: log, Client: client, Session: mgr, db: db}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
