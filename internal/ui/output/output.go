// Package output creates the termenv outputs used for human-readable logs.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the colour profile for log output.
// NO_COLOR selects Ascii, which is also what the download agent sets for its worker
// so relayed lines carry no escape sequences.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using ColorProfile. A nil w selects stderr.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(ColorProfile()), termenv.WithTTY(true))
}
