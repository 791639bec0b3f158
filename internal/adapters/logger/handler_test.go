package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		handler    func(*logger.PrettyHandler) slog.Handler
		level      slog.Level
		msg        string
		args       []any
		goldenName string
	}{
		{
			name:       "error level",
			handler:    func(h *logger.PrettyHandler) slog.Handler { return h },
			level:      slog.LevelError,
			msg:        "error message",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			handler:    func(h *logger.PrettyHandler) slog.Handler { return h },
			level:      slog.LevelDebug,
			msg:        "debug message",
			goldenName: "handler_debug_filtered",
		},
		{
			name:       "record attributes",
			handler:    func(h *logger.PrettyHandler) slog.Handler { return h },
			level:      slog.LevelInfo,
			msg:        "container started",
			args:       []any{"id", "abc123", "phase", "deps"},
			goldenName: "handler_record_attrs",
		},
		{
			name: "group attribute",
			handler: func(h *logger.PrettyHandler) slog.Handler {
				return h.WithAttrs([]slog.Attr{slog.Group("image", slog.String("arch", "amd64"))})
			},
			level:      slog.LevelInfo,
			msg:        "group attr message",
			goldenName: "handler_attrs_group",
		},
		{
			name: "nested groups",
			handler: func(h *logger.PrettyHandler) slog.Handler {
				return h.WithGroup("a").WithGroup("").WithGroup("b")
			},
			level:      slog.LevelWarn,
			msg:        "nested group message",
			args:       []any{"key", "val"},
			goldenName: "handler_group_nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			base := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
			lg := slog.New(tt.handler(base))

			lg.Log(t.Context(), tt.level, tt.msg, tt.args...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_LevelVar(t *testing.T) {
	level := &slog.LevelVar{}
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: level})

	assert.False(t, handler.Enabled(t.Context(), slog.LevelDebug))
	level.Set(slog.LevelDebug)
	assert.True(t, handler.Enabled(t.Context(), slog.LevelDebug))
}
