package config

import (
	"fmt"
	"time"
)

type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	DatabasePath        string
	SeedFile            string
	TokenSecret         string
	TokenTTL            time.Duration
	DigestKey           string
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001/api"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.DatabasePath = "data/admin.db"
	c.SeedFile = ""
	c.TokenSecret = "useradmin-dev-token-secret"
	c.TokenTTL = 24 * time.Hour
	c.DigestKey = "useradmin-dev-digest-key"
	c.LogLevel = "info"
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ServerURL == "":
		return fmt.Errorf("server url is empty")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("request timeout must be positive")
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("online check interval must be positive")
	case c.DatabasePath == "":
		return fmt.Errorf("database path is empty")
	case c.TokenSecret == "":
		return fmt.Errorf("token secret is empty")
	case c.TokenTTL <= 0:
		return fmt.Errorf("token ttl must be positive")
	case c.DigestKey == "":
		return fmt.Errorf("digest key is empty")
	}
	return nil
}

// Load applies defaults, then the JSON file named by -c/-config, then
// flags, all taken from args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
