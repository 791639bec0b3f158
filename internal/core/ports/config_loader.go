package ports

import "github.com/bunsenlabs/dockerbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the option file at path, or the default file in cwd when path is empty.
	// A missing default file yields the built-in settings.
	Load(cwd, path string) (domain.Settings, error)
}
