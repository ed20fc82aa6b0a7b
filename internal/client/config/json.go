package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/andiamoid/andiamo-admin/internal/flagx"
	"github.com/andiamoid/andiamo-admin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	AuthMode       string         `json:"auth_mode"`
	DataDir        string         `json:"data_dir"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ListenAddr     string         `json:"listen_addr"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. With no such flag the function is a no-op. Zero-valued
// JSON fields leave the existing config untouched.
func parseJson(cfg *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config %s: %w", jsonConfigFile, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", jsonConfigFile, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AuthMode != "" {
		mode, err := ParseAuthMode(jc.AuthMode)
		if err != nil {
			return fmt.Errorf("config %s: %w", jsonConfigFile, err)
		}
		cfg.AuthMode = mode
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	return nil
}
