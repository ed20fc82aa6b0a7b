package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by the frontend. A .env file in the
// working directory is loaded first; real environment variables win over it
// (godotenv.Load never overrides existing variables).
const (
	envAPIBaseURL     = "ANDIAMO_API_BASE_URL"
	envAuthMode       = "ANDIAMO_AUTH_MODE"
	envDataDir        = "ANDIAMO_DATA_DIR"
	envRequestTimeout = "ANDIAMO_REQUEST_TIMEOUT"
	envListenAddr     = "ANDIAMO_LISTEN_ADDR"
)

func parseEnv(cfg *Config) error {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envAuthMode); v != "" {
		mode, err := ParseAuthMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envAuthMode, err)
		}
		cfg.AuthMode = mode
	}
	if v := os.Getenv(envDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	return nil
}
