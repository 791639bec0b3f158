package domain

import "time"

// LogFormat selects the log output format.
type LogFormat string

// Log formats.
const (
	LogFormatAuto   LogFormat = "auto"
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Defaults applied when neither flags nor the option file set a value.
const (
	DefaultUnprivUser   = "nobody"
	DefaultUnprivGroup  = "nobody"
	DefaultTimeout      = 7200 * time.Second
	DefaultGitHubAPIURL = "https://api.github.com"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	UnprivUser   string
	UnprivGroup  string
	Timeout      time.Duration
	Architecture Architecture
	LogFormat    LogFormat
	GitHubAPIURL string
	// ScriptsDir overrides the embedded container scripts when set.
	ScriptsDir string
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		UnprivUser:   DefaultUnprivUser,
		UnprivGroup:  DefaultUnprivGroup,
		Timeout:      DefaultTimeout,
		Architecture: DefaultArchitecture,
		LogFormat:    LogFormatAuto,
		GitHubAPIURL: DefaultGitHubAPIURL,
	}
}
