package ports

import "github.com/bunsenlabs/dockerbuild/internal/core/domain"

// CapabilityProbe reports the effective capabilities of a process.
//
//go:generate mockgen -source=capability.go -destination=mocks/mock_capability.go -package=mocks
type CapabilityProbe interface {
	// Capabilities decodes the effective capability set of pid.
	Capabilities(pid int) (domain.CapabilitySet, error)

	// HasCapabilities reports whether pid holds every required capability.
	HasCapabilities(pid int, required ...string) (bool, error)
}
