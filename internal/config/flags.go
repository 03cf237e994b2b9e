package config

import (
	"flag"
	"os"
)

// flagArgs is a seam so tests can supply arguments without touching os.Args.
var flagArgs = func() []string { return os.Args[1:] }

// parseFlags populates selected Config fields from command-line flags. Flags
// default to the already-layered values, so an absent flag changes nothing.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("adnab", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend: sqlite, redis or memory")
	fs.StringVar(&cfg.SQLitePath, "d", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address (host:port)")
	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	_ = fs.Parse(flagArgs())
}
