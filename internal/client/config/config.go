// Package config loads runtime settings for the Andiamo admin frontend.
//
// Sources are applied in order, later ones winning:
// defaults -> environment (.env supported) -> JSON file (-c/-config) -> flags.
package config

import (
	"fmt"
	"time"
)

// AuthMode selects how the client authenticates against the backend.
type AuthMode string

const (
	// AuthModeToken sends a bearer token in the Authorization header.
	AuthModeToken AuthMode = "token"
	// AuthModeCookie relies on a server-side cookie session primed with a
	// CSRF cookie before login.
	AuthModeCookie AuthMode = "cookie"
)

// ParseAuthMode validates an auth mode string. Empty defaults to token mode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "", string(AuthModeToken):
		return AuthModeToken, nil
	case string(AuthModeCookie):
		return AuthModeCookie, nil
	default:
		return "", fmt.Errorf("invalid auth mode %q (must be token or cookie)", s)
	}
}

// Config holds runtime settings shared by the CLI and the web frontend.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, no trailing slash.
//   - AuthMode: token or cookie.
//   - DataDir: directory holding the local credential store.
//   - RequestTimeout: per-request HTTP timeout.
//   - ListenAddr: bind address for the web frontend (cmd/web only).
type Config struct {
	APIBaseURL     string
	AuthMode       AuthMode
	DataDir        string
	RequestTimeout time.Duration
	ListenAddr     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.AuthMode = AuthModeToken
	c.DataDir = "."
	c.RequestTimeout = 15 * time.Second
	c.ListenAddr = ":8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
