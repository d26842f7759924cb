package config

import (
	"time"
)

type Store string

const (
	StoreMemory Store = "memory"
	StoreSQLite Store = "sqlite"
)

// Path is the location of the yaml config file. Empty means defaults only.
type Path string

type Config struct {
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Login   Login   `yaml:"login"`
	Log     Log     `yaml:"log"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Honour X-Real-IP / X-Forwarded-For. Only set behind a proxy that
	// overwrites them.
	TrustedProxy bool `yaml:"trusted_proxy"`
}

type API struct {
	BaseURL string `yaml:"base_url"`
	// Zero means requests wait for the API indefinitely.
	Timeout time.Duration `yaml:"timeout"`
}

type Session struct {
	Lifetime     time.Duration `yaml:"lifetime"`
	CookieSecure bool          `yaml:"cookie_secure"`
	Store        Store         `yaml:"store"`
	SQLitePath   string        `yaml:"sqlite_path"`
}

type Login struct {
	// Attempts per second allowed per client address.
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

type Log struct {
	Development bool `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Host: "localhost",
			Port: 8123,
		},
		API: API{
			BaseURL: "http://127.0.0.1:5000/api/v1",
		},
		Session: Session{
			Lifetime:   24 * time.Hour,
			Store:      StoreMemory,
			SQLitePath: "sessions.db",
		},
		Login: Login{
			Rate:  0.2,
			Burst: 5,
		},
		Log: Log{
			Development: true,
		},
	}
}

func New(path Path) (*Config, error) {
	if path == "" {
		c := Default()
		applyEnv(c)
		return c, c.validate()
	}
	return Load(string(path))
}
