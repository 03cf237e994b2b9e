package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from an optional .env file and from
// the process environment. A missing .env file is not an error.
func parseEnv(cfg *Config) {
	envFile := os.Getenv("ADNAB_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	setString(&cfg.StorageBackend, "ADNAB_STORAGE_BACKEND")
	setString(&cfg.SQLitePath, "ADNAB_SQLITE_PATH")
	setString(&cfg.RedisAddr, "ADNAB_REDIS_ADDR")
	setString(&cfg.RedisPassword, "ADNAB_REDIS_PASSWORD")
	setInt(&cfg.RedisDB, "ADNAB_REDIS_DB")
	setString(&cfg.HTTPAddr, "ADNAB_HTTP_ADDR")
	setDuration(&cfg.ShutdownTimeout, "ADNAB_SHUTDOWN_TIMEOUT")
	setString(&cfg.LogLevel, "ADNAB_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
