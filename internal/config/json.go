package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/visadesk/internal/flagx"
	"github.com/dmitrijs2005/visadesk/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields distinguish "absent" from
// zero values so a partial file only overrides what it names.
type JsonConfig struct {
	StorageBackend    *string         `json:"storage_backend"`
	DatabaseDSN       *string         `json:"database_dsn"`
	StorageQuotaBytes *int64          `json:"storage_quota_bytes"`
	ChatHistoryLimit  *int            `json:"chat_history_limit"`
	SessionName       *string         `json:"session_name"`
	Logger            *string         `json:"logger"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
	BusyTimeout       *timex.Duration `json:"busy_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on read
// or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.StorageBackend, jc.StorageBackend)
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.StorageQuotaBytes, jc.StorageQuotaBytes)
	setIf(&cfg.ChatHistoryLimit, jc.ChatHistoryLimit)
	setIf(&cfg.SessionName, jc.SessionName)
	setIf(&cfg.Logger, jc.Logger)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.BusyTimeout != nil {
		cfg.BusyTimeout = jc.BusyTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
