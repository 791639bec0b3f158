package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bunsenlabs/dockerbuild/internal/ui/output"
	"github.com/bunsenlabs/dockerbuild/internal/ui/style"
	"github.com/muesli/termenv"
)

// PrettyHandler is a custom slog.Handler that produces human-readable,
// colored output using the shared UI components.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// A *slog.LevelVar passed in opts keeps controlling the level after creation.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var msg string
	var color termenv.Color

	switch {
	case r.Level >= slog.LevelError:
		msg = style.ErrorIcon + " " + r.Message
		color = termenv.RGBColor(string(style.ErrorColor))
	case r.Level >= slog.LevelWarn:
		msg = style.WarnIcon + " " + r.Message
		color = termenv.RGBColor(string(style.WarnColor))
	case r.Level >= slog.LevelInfo:
		msg = r.Message
		color = termenv.RGBColor(string(style.InfoColor))
	default:
		msg = style.DebugIcon + " " + r.Message
		color = termenv.RGBColor(string(style.DebugColor))
	}

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	attrParts = append(attrParts, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = appendAttr(attrParts, h.group, attr)
		return true
	})

	if len(attrParts) > 0 {
		msg += " " + strings.Join(attrParts, " ")
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, attr := range attrs {
		newAttrs = appendAttr(newAttrs, h.group, attr)
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler qualifying later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: qualify(h.group, name),
	}
}

// appendAttr formats attr as key=value pairs, flattening groups.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, qualify(group, attr.Key), member)
		}
		return parts
	}
	return append(parts, qualify(group, attr.Key)+"="+attr.Value.String())
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	if key == "" {
		return group
	}
	return group + "." + key
}
