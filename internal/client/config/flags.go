package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-i", "-d", "-f", "-s", "-l", "-k", "-v"}

// parseFlags overlays cfg with command-line flags. Arguments that are not
// config flags are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the remote API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "availability probe interval (seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.SeedFile, "f", cfg.SeedFile, "YAML seed file")
	fs.StringVar(&cfg.TokenSecret, "s", cfg.TokenSecret, "secret for local session tokens")
	ttl := fs.Int("l", int(cfg.TokenTTL.Hours()), "local session token lifetime (hours)")
	fs.StringVar(&cfg.DigestKey, "k", cfg.DigestKey, "password digest key")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations change only when their flag is present.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "l":
			cfg.TokenTTL = time.Duration(*ttl) * time.Hour
		}
	})
	return nil
}
