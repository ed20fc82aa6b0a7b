package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_OverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_base_url": "https://api.andiamo.id/api",
		"auth_mode": "cookie",
		"data_dir": "/var/lib/andiamo",
		"request_timeout": "45s",
		"listen_addr": ":9090"
	}`)
	withArgs(t, "-c", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://api.andiamo.id/api", cfg.APIBaseURL)
	require.Equal(t, AuthModeCookie, cfg.AuthMode)
	require.Equal(t, "/var/lib/andiamo", cfg.DataDir)
	require.Equal(t, 45*time.Second, cfg.RequestTimeout)
	require.Equal(t, ":9090", cfg.ListenAddr)
}

func TestParseJson_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"api_base_url": "https://partial.example.com"}`)
	withArgs(t, "-config", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://partial.example.com", cfg.APIBaseURL)
	require.Equal(t, AuthModeToken, cfg.AuthMode)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseJson_MissingFileFails(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestParseJson_MalformedFileFails(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	withArgs(t, "-c", path)

	_, err := LoadConfig()
	require.Error(t, err)
}
