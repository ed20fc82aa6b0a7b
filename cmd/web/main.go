package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/andiamoid/andiamo-admin/internal/buildinfo"
	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/config"
	"github.com/andiamoid/andiamo-admin/internal/client/session"
	"github.com/andiamoid/andiamo-admin/internal/client/store"
	"github.com/andiamoid/andiamo-admin/internal/logging"
	"github.com/andiamoid/andiamo-admin/internal/web"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	client, err := api.NewHTTPClient(cfg.APIBaseURL, cfg.AuthMode, cfg.RequestTimeout, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	mgr := session.NewManager(client, store.NewKV(db, logger), logger)
	if err := mgr.Initialize(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	srv, err := web.NewServer(cfg, logger, client, mgr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
