package ports

import "github.com/bunsenlabs/dockerbuild/internal/core/domain"

// ManifestReader reads the identity of a Debian source package.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read parses debian/changelog and debian/control below sourceDir.
	Read(sourceDir string) (domain.PackageIdentity, error)
}
