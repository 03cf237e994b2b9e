// The adnab console: an interactive session over the local identity store.
package main

import (
	"context"
	"log"
	"os"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/cli"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/config"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/logging"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/session"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/backend"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	adapter, closeAdapter, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeAdapter()

	store := session.NewStore(adapter, logger)
	defer store.Close(ctx)

	app := cli.NewStdioApp(store)
	app.Run(ctx)
}
