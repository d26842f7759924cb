package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const envAPIBaseURL = "HBNB_API_BASE_URL"

var (
	errInvalidBaseURL = errors.New("api.base_url must be an absolute http(s) url")
	errInvalidPort    = errors.New("server.port out of range")
	errUnknownStore   = errors.New("unrecognized session store")
)

func Load(path string) (*Config, error) {
	filename, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes yaml over the defaults, so omitted keys keep their default.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(c)
	return c, c.validate()
}

func applyEnv(c *Config) {
	if v := os.Getenv(envAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidBaseURL, c.API.BaseURL)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", errInvalidPort, c.Server.Port)
	}
	switch c.Session.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("%w: %q", errUnknownStore, c.Session.Store)
	}
	return nil
}
