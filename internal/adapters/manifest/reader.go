// Package manifest reads the identity of a Debian source package from its
// changelog and control file.
package manifest

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	digest "github.com/opencontainers/go-digest"
	"go.trai.ch/zerr"
	"pault.ag/go/debian/changelog"
)

// Reader implements ports.ManifestReader.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the top debian/changelog entry and digests debian/control.
func (r *Reader) Read(sourceDir string) (domain.PackageIdentity, error) {
	dir, err := filepath.Abs(sourceDir)
	if err != nil {
		return domain.PackageIdentity{}, errors.Join(domain.ErrManifest,
			zerr.With(zerr.Wrap(err, "failed to resolve source directory"), "path", sourceDir))
	}

	changelogPath := filepath.Join(dir, "debian", "changelog")
	entry, err := changelog.ParseFileOne(changelogPath)
	if err != nil {
		return domain.PackageIdentity{}, errors.Join(domain.ErrManifest,
			zerr.With(zerr.Wrap(err, "failed to parse changelog"), "path", changelogPath))
	}
	if entry.Source == "" || entry.Target == "" {
		return domain.PackageIdentity{}, zerr.With(
			zerr.Wrap(domain.ErrManifest, "changelog entry lacks a source name or distribution"), "path", changelogPath)
	}

	controlPath := filepath.Join(dir, "debian", "control")
	control, err := os.ReadFile(controlPath) //nolint:gosec // path is inside the package source
	if err != nil {
		return domain.PackageIdentity{}, errors.Join(domain.ErrManifest,
			zerr.With(zerr.Wrap(err, "failed to read control file"), "path", controlPath))
	}

	return domain.PackageIdentity{
		Name:               entry.Source,
		FullVersion:        entry.Version.String(),
		UpstreamVersion:    entry.Version.Version,
		Distribution:       entry.Target,
		TargetDistribution: domain.DebianRelease(entry.Target),
		ManifestDigest:     digest.FromBytes(control).Encoded(),
		SourceDir:          dir,
	}, nil
}
