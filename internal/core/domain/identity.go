package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Image labels carried by dependency images.
const (
	LabelBuildArch     = "BL_BUILD_ARCH"
	LabelSourceID      = "BL_SOURCE_ID"
	LabelSourceName    = "BL_SOURCE_NAME"
	LabelSourceVersion = "BL_SOURCE_VERSION"
)

// PackageIdentity describes a source package as read from its manifest.
type PackageIdentity struct {
	// Name is the source package name.
	Name string
	// FullVersion is the complete Debian version including epoch and revision.
	FullVersion string
	// UpstreamVersion is the upstream part of the version.
	UpstreamVersion string
	// Distribution is the distribution named in the changelog.
	Distribution string
	// TargetDistribution is the Debian release the package is built on.
	TargetDistribution string
	// ManifestDigest is the hex SHA-256 of the raw dependency manifest.
	ManifestDigest string
	// SourceDir is the absolute path of the package source tree.
	SourceDir string
}

// SourceID identifies the dependency set of the package on its target distribution.
func (p PackageIdentity) SourceID() string {
	return p.TargetDistribution + ":" + p.ManifestDigest
}

// DependencyImageKey identifies a cached dependency image.
// Two builds with equal keys share the same image.
type DependencyImageKey struct {
	Distribution   string
	Architecture   Architecture
	ManifestDigest string
}

// NewDependencyImageKey derives the cache key for building id on arch.
func NewDependencyImageKey(id PackageIdentity, arch Architecture) DependencyImageKey {
	return DependencyImageKey{
		Distribution:   id.TargetDistribution,
		Architecture:   arch,
		ManifestDigest: id.ManifestDigest,
	}
}

// SourceID returns the value of the source label for the key.
func (k DependencyImageKey) SourceID() string {
	return k.Distribution + ":" + k.ManifestDigest
}

// Filter returns the label filter that finds images cached under the key.
func (k DependencyImageKey) Filter() map[string]string {
	return map[string]string{
		LabelSourceID:  k.SourceID(),
		LabelBuildArch: k.Architecture.String(),
	}
}

// Labels returns the full label set applied to dependency images built for id.
func (k DependencyImageKey) Labels(id PackageIdentity) map[string]string {
	labels := k.Filter()
	labels[LabelSourceName] = id.Name
	labels[LabelSourceVersion] = id.FullVersion
	return labels
}

// Fingerprint returns a short, stable hash of the key for logs and spans.
func (k DependencyImageKey) Fingerprint() string {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(k.Distribution)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(k.Architecture.String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(k.ManifestDigest)
	return strconv.FormatUint(hasher.Sum64(), 16)
}
