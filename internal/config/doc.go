// Package config loads runtime configuration for visadesk.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   storage backend: sqlite | memory
//	-d string   SQLite database path or DSN
//	-q int      storage quota in bytes (memory backend, 0 = unlimited)
//	-m int      chat history limit per user
//	-s string   session name (isolates the "current user" snapshot)
//	-L string   logger backend: slog | zap
//	-l string   log level: debug | info | warn | error
//	-f string   log format for slog: text | json
//	-t int      SQLite busy timeout (seconds)
//
// # JSON schema
//
//	{
//	  "storage_backend": "sqlite",
//	  "database_dsn": "visadesk.db",
//	  "storage_quota_bytes": 5242880,
//	  "chat_history_limit": 100,
//	  "session_name": "",
//	  "logger": "slog",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "busy_timeout": "5s"
//	}
package config
