package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	tests := []struct {
		level, msg, attr string
	}{
		{"DEBUG", "dbg", "a=1"},
		{"INFO", "inf", "b=2"},
		{"WARN", "wrn", "c=3"},
		{"ERROR", "err", "d=4"},
	}
	for _, tc := range tests {
		assert.Contains(t, out, "level="+tc.level)
		assert.Contains(t, out, "msg="+tc.msg)
		assert.Contains(t, out, tc.attr)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("user_id", "u-1").Info(context.Background(), "session refreshed", "key", "current_user")

	out := buf.String()
	for _, s := range []string{"level=INFO", `msg="session refreshed"`, "user_id=u-1", "key=current_user"} {
		assert.Contains(t, out, s)
	}
}
