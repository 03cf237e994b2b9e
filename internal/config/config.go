// Package config loads runtime configuration for the adnab binaries.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file loaded via godotenv (path from the ADNAB_ENV_FILE
//     variable; "./.env" when unset and present).
//  3. Process environment variables.
//  4. Command-line flags, which override everything.
//
// Supported flags
//
//	-b string   storage backend: sqlite, redis or memory
//	-d string   sqlite database path
//	-r string   redis address (host:port)
//	-a string   HTTP listen address (daemon only)
//	-l string   log level: debug, info, warn, error
package config

import (
	"time"
)

// Backend names accepted by the -b flag / ADNAB_STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime settings shared by the console and the daemon.
type Config struct {
	StorageBackend string
	SQLitePath     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPAddr        string
	ShutdownTimeout time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults: a sqlite store next to the
// binary and a loopback-only daemon address.
func (c *Config) LoadDefaults() {
	c.StorageBackend = BackendSQLite
	c.SQLitePath = "adnab.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.HTTPAddr = "127.0.0.1:8765"
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays the .env
// file, environment variables, and command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
