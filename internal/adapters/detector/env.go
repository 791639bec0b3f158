// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"golang.org/x/term"
)

// DetectEnvironment returns the recommended log format based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() domain.LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return domain.LogFormatJSON
	}
	return domain.LogFormatPretty
}

// ResolveFormat applies the configured format to auto-detection.
// Unknown values fall back to the detected format.
func ResolveFormat(autoDetected, configured domain.LogFormat) domain.LogFormat {
	switch configured {
	case domain.LogFormatPretty, domain.LogFormatJSON:
		return configured
	default:
		return autoDetected
	}
}
