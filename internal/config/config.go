// Package config loads runtime settings from the environment, an optional
// .env file, and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings
type Config struct {
	Port      int    `env:"EVENTDASH_PORT" envDefault:"8081"`
	DBPath    string `env:"EVENTDASH_DB" envDefault:":memory:"`
	LogLevel  string `env:"EVENTDASH_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"EVENTDASH_LOG_FORMAT" envDefault:"text"` // text, json
	HTTPLog   bool   `env:"EVENTDASH_HTTP_LOG" envDefault:"false"`

	// Latency is added to every store call to mimic a remote backend
	Latency time.Duration `env:"EVENTDASH_LATENCY" envDefault:"500ms"`
	Seed    bool          `env:"EVENTDASH_SEED" envDefault:"true"`
	NodeID  int64         `env:"EVENTDASH_NODE_ID" envDefault:"1"`

	// BaseURL is encoded in check-in QR codes; empty means detect the LAN address
	BaseURL string `env:"EVENTDASH_BASE_URL"`

	SessionIdle   time.Duration `env:"EVENTDASH_SESSION_IDLE" envDefault:"30m"`
	StatsInterval time.Duration `env:"EVENTDASH_STATS_INTERVAL" envDefault:"30s"`

	AdminName     string `env:"EVENTDASH_ADMIN_NAME" envDefault:"Administrador"`
	AdminEmail    string `env:"EVENTDASH_ADMIN_EMAIL" envDefault:"admin@eventos.com"`
	AdminPassword string `env:"EVENTDASH_ADMIN_PASSWORD" envDefault:"123456"`

	ShowVersion bool `env:"-"`
}

// Load reads the given .env files (missing files are skipped), then the
// process environment. With no files it tries ".env".
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds command-line flags to cfg using its current values
// as defaults, so flags override the environment
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	flags.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path (:memory: keeps data in memory)")
	flags.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&c.LogFormat, "logformat", c.LogFormat, "Log format (text, json)")
	flags.BoolVar(&c.HTTPLog, "httplog", c.HTTPLog, "Log every HTTP request")
	flags.DurationVar(&c.Latency, "latency", c.Latency, "Simulated store latency")
	flags.BoolVar(&c.Seed, "seed", c.Seed, "Load sample events when the store is empty")
	flags.StringVar(&c.BaseURL, "baseurl", c.BaseURL, "Public base URL encoded in check-in QR codes")
	flags.StringVar(&c.AdminPassword, "adminpw", c.AdminPassword, "Admin password (empty generates one)")
	flags.DurationVar(&c.SessionIdle, "session-idle", c.SessionIdle, "Drop rule editing sessions idle this long")
	flags.BoolVar(&c.ShowVersion, "version", false, "Show version and exit")
}

// Validate checks settings that cannot be defaulted
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative")
	}
	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node id must be between 0 and 1023")
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("admin email is required")
	}
	if c.SessionIdle <= 0 || c.StatsInterval <= 0 {
		return fmt.Errorf("session idle and stats interval must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
