package logger_test

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(lg *logger.Logger) { lg.Info("dependency image found") },
			goldenName: "info_basic",
		},
		{
			name:       "multiline info",
			log:        func(lg *logger.Logger) { lg.Info("line1\nline2") },
			goldenName: "info_multiline",
		},
		{
			name:       "warning",
			log:        func(lg *logger.Logger) { lg.Warn("process capabilities unknown") },
			goldenName: "warn_basic",
		},
		{
			name: "debug enabled",
			log: func(lg *logger.Logger) {
				lg.SetDebug(true)
				lg.Debug("skipping tag latest")
			},
			goldenName: "debug_enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Debug_DisabledByDefault(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetDebug(true)
	lg.SetDebug(false)
	lg.Debug("still hidden")
	assert.Empty(t, buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "joined sentinel and cause",
			err: errors.Join(domain.ErrDownload, zerr.With(
				zerr.Wrap(errors.New("exit status 1"), "download worker failed"),
				"url", "https://example.invalid/a.tar.gz")),
			goldenName: "error_joined",
		},
		{
			name: "detail on sentinel",
			err: zerr.With(
				zerr.Wrap(domain.ErrContainerRuntime, "build container failed"),
				"exit_code", int64(2)),
			goldenName: "error_sentinel_detail",
		},
		{
			name: "metadata on standard error",
			err: zerr.With(
				zerr.Wrap(zerr.With(errors.New("connection refused"), "host", "127.0.0.1"), "request failed"),
				"attempt", 1),
			goldenName: "error_metadata_passthrough",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.Wrap(domain.ErrTagResolution, "no tag matches pattern"), "project", "bunsenlabs/bunsen-exit"))

	output := buf.String()
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"error"`)
	assert.Contains(t, output, "no tag matches pattern")
	assert.Contains(t, output, "bunsenlabs/bunsen-exit")
	assert.NotContains(t, output, "✗")

	buf.Reset()
	lg.SetDebug(true)
	lg.Debug("json debug")
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("error in pretty mode"))
	prettyOutput := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("error in json mode"))
	jsonOutput := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("error back in pretty mode"))
	backToPrettyOutput := buf.String()

	assert.Contains(t, prettyOutput, "✗")
	assert.Contains(t, jsonOutput, `"error"`)
	assert.NotContains(t, jsonOutput, "✗")
	assert.Contains(t, backToPrettyOutput, "✗")
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for range 4 {
		wg.Go(func() { lg.Info("concurrent info") })
		wg.Go(func() { lg.Warn("concurrent warn") })
		wg.Go(func() { lg.Error(errors.New("concurrent error")) })
		wg.Go(func() { lg.SetJSON(true) })
		wg.Go(func() { lg.SetDebug(true) })
	}
	wg.Wait()
}
