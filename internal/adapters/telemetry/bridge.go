package telemetry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Bridge implements sdktrace.SpanProcessor to report span lifecycles to a Logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(fmt.Sprintf("%s started", s.Name()))
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	attrs := formatAttributes(s)

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		b.logger.Warn(fmt.Sprintf("%s failed after %s%s: %s", s.Name(), elapsed, attrs, firstLine(desc)))
		return
	}

	b.logger.Info(fmt.Sprintf("%s finished in %s%s", s.Name(), elapsed, attrs))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func formatAttributes(s sdktrace.ReadOnlySpan) string {
	kvs := s.Attributes()
	if len(kvs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}
	slices.Sort(parts)
	return " (" + strings.Join(parts, " ") + ")"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
