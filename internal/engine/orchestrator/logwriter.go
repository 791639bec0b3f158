package orchestrator

import (
	"bytes"
	"strings"

	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
)

// logWriter forwards complete lines of container output to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func newLogWriter(logger ports.Logger) *logWriter {
	return &logWriter{logger: logger}
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// apt progress output uses carriage returns.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}
