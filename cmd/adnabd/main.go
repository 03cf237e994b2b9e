// The adnab daemon: serves the session store to view processes over a local
// HTTP API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/config"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/httpapi"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/logging"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/session"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/backend"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	adapter, closeAdapter, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeAdapter()

	store := session.NewStore(adapter, logger)
	store.Initialize(ctx)

	srv := httpapi.NewServer(httpapi.Config{Addr: cfg.HTTPAddr}, store, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error(ctx, "http server failed", "err", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "http shutdown failed", "err", err)
	}
	// Drain queued fire-and-forget writes before letting go of the store.
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "session store close failed", "err", err)
	}
}
