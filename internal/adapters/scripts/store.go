// Package scripts provides the entrypoint scripts run inside build containers.
package scripts

import (
	"embed"
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed assets/*.sh
var assets embed.FS

// Names lists the scripts every scripts directory must provide.
var Names = []string{domain.InstallDependenciesScript, domain.BuildScript}

// Store implements ports.ScriptStore from the embedded scripts.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Materialize writes every script into dir as an executable file.
func (s *Store) Materialize(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrConfiguration,
			zerr.With(zerr.Wrap(err, "failed to create scripts directory"), "path", dir))
	}

	for _, name := range Names {
		data, err := assets.ReadFile(path.Join("assets", name))
		if err != nil {
			return zerr.With(zerr.Wrap(err, "embedded script missing"), "script", name)
		}
		if err := atomicWriteFile(filepath.Join(dir, name), data); err != nil {
			return errors.Join(domain.ErrConfiguration,
				zerr.With(zerr.Wrap(err, "failed to write script"), "script", name))
		}
	}
	return nil
}

// Validate checks that dir provides every script as an executable file.
func Validate(dir string) error {
	for _, name := range Names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return errors.Join(domain.ErrConfiguration,
				zerr.With(zerr.Wrap(err, "container script not found"), "script", filepath.Join(dir, name)))
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, "container script is not an executable file"),
				"script", filepath.Join(dir, name))
		}
	}
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(target string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(target), ".script-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.ExecPerm); err != nil {
		return err
	}

	return os.Rename(tmpName, target)
}
