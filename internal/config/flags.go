package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/visadesk/internal/flagx"
)

var knownFlags = []string{"-b", "-d", "-q", "-m", "-s", "-L", "-l", "-f", "-t"}

// parseFlags overlays cfg with command-line flags (see package doc). Unknown
// flags are filtered out first; malformed values panic.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (sqlite|memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database path")
	fs.Int64Var(&cfg.StorageQuotaBytes, "q", cfg.StorageQuotaBytes, "storage quota in bytes (memory backend)")
	fs.IntVar(&cfg.ChatHistoryLimit, "m", cfg.ChatHistoryLimit, "chat history limit per user")
	fs.StringVar(&cfg.SessionName, "s", cfg.SessionName, "session name")
	fs.StringVar(&cfg.Logger, "L", cfg.Logger, "logger backend (slog|zap)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text|json)")
	busyTimeout := fs.Int("t", int(cfg.BusyTimeout.Seconds()), "sqlite busy timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.BusyTimeout = time.Duration(*busyTimeout) * time.Second
		}
	})
}
