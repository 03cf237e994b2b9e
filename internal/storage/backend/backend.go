// Package backend selects and opens the configured storage adapter.
package backend

import (
	"context"
	"fmt"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/config"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/memory"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/redis"
	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/sqlite"
)

// Open builds the adapter named by cfg.StorageBackend. The returned close
// func releases backend resources and is a no-op for the memory backend.
func Open(ctx context.Context, cfg *config.Config) (storage.Adapter, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		a, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return a, a.Close, nil

	case config.BackendRedis:
		a, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return a, a.Close, nil

	case config.BackendMemory:
		return memory.New(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
