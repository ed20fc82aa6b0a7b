package config

import (
	"flag"
	"os"
	"time"

	"github.com/andiamoid/andiamo-admin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the backend API
//	-d string   data directory for the local credential store
//	-l string   listen address for the web frontend
//	-t int      request timeout in seconds
//
// os.Args is filtered to only the flags handled here, so the cobra command
// tree and the -c/-config flag keep working untouched.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the local store")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "listen address (web frontend)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
