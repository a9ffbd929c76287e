package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://apikwizz.sharingancode.site/api/v1"

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		File  string `yaml:"file"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			TTL      string `yaml:"ttl"`
		} `yaml:"redis"`
	} `yaml:"session"`
	Game struct {
		DefaultTimeLimit int    `yaml:"default_time_limit"`
		ResultDelay      string `yaml:"result_delay"`
	} `yaml:"game"`
}

// Load reads YAML config from path. A missing file yields the zero config
// so the client runs with defaults alone.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BaseURL returns the configured API base or the production default.
func (c Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return defaultBaseURL
}

// SessionFile resolves the credential file path, defaulting to
// kwiz/session.json under the user config dir.
func (c Config) SessionFile() string {
	if c.Session.File != "" {
		return c.Session.File
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "kwiz", "session.json")
}

// DefaultTimeLimit is the countdown used when the server omits a
// question time limit.
func (c Config) DefaultTimeLimit() int {
	if c.Game.DefaultTimeLimit > 0 {
		return c.Game.DefaultTimeLimit
	}
	return 30
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
