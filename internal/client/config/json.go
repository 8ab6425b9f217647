package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
	"github.com/dmitrijs2005/useradmin/internal/timex"
	"github.com/tidwall/jsonc"
)

// jsonConfig mirrors Config for decoding. Pointer fields distinguish
// "absent" from "zero" so a partial file only overrides what it names.
type jsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DatabasePath        *string         `json:"database_path"`
	SeedFile            *string         `json:"seed_file"`
	TokenSecret         *string         `json:"token_secret"`
	TokenTTL            *timex.Duration `json:"token_ttl"`
	DigestKey           *string         `json:"digest_key"`
	LogLevel            *string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.SeedFile, jc.SeedFile)
	setString(&cfg.TokenSecret, jc.TokenSecret)
	setDuration(&cfg.TokenTTL, jc.TokenTTL)
	setString(&cfg.DigestKey, jc.DigestKey)
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
