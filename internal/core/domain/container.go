package domain

import "time"

// Phase names the stage of a build a container belongs to.
type Phase string

// Build phases.
const (
	PhaseDependencies Phase = "deps"
	PhaseBuild        Phase = "build"
)

// Mount binds a host path into a container.
type Mount struct {
	HostPath      string
	ContainerPath string
	ReadOnly      bool
}

// ContainerSpec describes a container to launch.
type ContainerSpec struct {
	// Name is the container name. Empty lets the runtime choose.
	Name    string
	Image   string
	Command []string
	Labels  map[string]string
	Mounts  []Mount
}

// ExitStatus is the result of waiting for a container.
type ExitStatus struct {
	// Code is the exit code of the container's main process.
	Code int64
	// Error is the execution error reported by the runtime, if any.
	Error string
}

// Success reports whether the container exited cleanly.
func (s ExitStatus) Success() bool {
	return s.Code == 0 && s.Error == ""
}

// ImageRef is a reference to an image in the runtime's store.
type ImageRef struct {
	ID      string
	Labels  map[string]string
	Created time.Time
}

// BuildRequest is one orchestrator invocation.
type BuildRequest struct {
	Identity     PackageIdentity
	Architecture Architecture
	// ScriptsDir is the host directory holding the container scripts.
	ScriptsDir string
	// OutputDir is the host directory receiving build artifacts.
	OutputDir string
	// Timeout bounds each container wait.
	Timeout time.Duration
}
