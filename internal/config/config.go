package config

import (
	"os"
	"time"
)

// Config holds runtime settings for visadesk.
type Config struct {
	StorageBackend    string
	DatabaseDSN       string
	StorageQuotaBytes int64
	ChatHistoryLimit  int
	SessionName       string
	Logger            string
	LogLevel          string
	LogFormat         string
	BusyTimeout       time.Duration
}

// DefaultChatHistoryLimit is the per-user cap on stored chat messages.
const DefaultChatHistoryLimit = 100

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = "sqlite"
	c.DatabaseDSN = "visadesk.db"
	c.StorageQuotaBytes = 0
	c.ChatHistoryLimit = DefaultChatHistoryLimit
	c.SessionName = ""
	c.Logger = "slog"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BusyTimeout = 5 * time.Second
}

// LoadConfig constructs a Config from defaults, then the JSON file (if any),
// then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
