package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the backend and verbosity of the logger built by New.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	Format  string // "text" (default) or "json"
}

// New builds a Logger writing to w, or to stderr when w is nil. For zap,
// "text" selects the console encoder and "json" the production one.
func New(opts Options, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	switch strings.ToLower(opts.Backend) {
	case "", "slog":
		hopts := &slog.HandlerOptions{Level: slogLevel(opts.Level)}
		var h slog.Handler
		if strings.EqualFold(opts.Format, "json") {
			h = slog.NewJSONHandler(w, hopts)
		} else {
			h = slog.NewTextHandler(w, hopts)
		}
		return NewSlogLogger(slog.New(h)), nil

	case "zap":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		var enc zapcore.Encoder
		if strings.EqualFold(opts.Format, "json") {
			enc = zapcore.NewJSONEncoder(encCfg)
		} else {
			enc = zapcore.NewConsoleEncoder(encCfg)
		}
		core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(zapLevel(opts.Level)))
		return NewZapLogger(zap.New(core, zap.AddCaller())), nil

	default:
		return nil, fmt.Errorf("unknown logger backend: %s", opts.Backend)
	}
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func zapLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
