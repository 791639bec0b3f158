package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Architecture is a Debian build architecture.
type Architecture string

// Supported build architectures.
const (
	ArchAMD64 Architecture = "amd64"
	ArchI386  Architecture = "i386"
	ArchARMHF Architecture = "armhf"
	ArchARM64 Architecture = "arm64"
)

// DefaultArchitecture is used when no architecture is requested.
const DefaultArchitecture = ArchAMD64

// Architectures lists the architectures accepted on the command line.
var Architectures = []Architecture{ArchAMD64, ArchI386, ArchARMHF, ArchARM64}

// archRepositories maps an architecture to the image repository prefix that
// publishes Debian images for it. The native architecture has no prefix.
var archRepositories = map[Architecture]string{
	ArchI386:  "i386",
	ArchARMHF: "arm32v7",
	ArchARM64: "arm64v8",
}

// ParseArchitecture validates an architecture name.
func ParseArchitecture(s string) (Architecture, error) {
	arch := Architecture(s)
	if !slices.Contains(Architectures, arch) {
		return "", zerr.With(zerr.Wrap(ErrConfiguration, "invalid architecture"), "architecture", s)
	}
	return arch, nil
}

// String implements fmt.Stringer.
func (a Architecture) String() string {
	return string(a)
}

// BaseImage returns the Debian base image for the architecture and distribution.
// Unmapped architectures fall back to the default repository.
func BaseImage(arch Architecture, distribution string) string {
	if repo := archRepositories[arch]; repo != "" {
		return repo + "/debian:" + distribution
	}
	return "debian:" + distribution
}
