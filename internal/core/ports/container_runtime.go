package ports

import (
	"context"
	"io"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
)

// ContainerRuntime launches and manages build containers.
//
//go:generate mockgen -source=container_runtime.go -destination=mocks/mock_container_runtime.go -package=mocks
type ContainerRuntime interface {
	// Run creates and starts a container, returning its ID.
	Run(ctx context.Context, spec domain.ContainerSpec) (string, error)

	// Wait blocks until the container exits or the timeout elapses.
	// Expiry of the timeout is returned as an error.
	Wait(ctx context.Context, id string, timeout time.Duration) (domain.ExitStatus, error)

	// Logs copies the combined container output to w.
	// With follow set it returns once the container stops or ctx is done.
	Logs(ctx context.Context, id string, follow bool, w io.Writer) error

	// Commit snapshots the container filesystem as an untagged image.
	Commit(ctx context.Context, id string, labels map[string]string) (string, error)

	// Remove force-removes the container.
	Remove(ctx context.Context, id string) error

	// ListImages returns the images carrying every label in filter, newest first.
	// No match is an empty slice.
	ListImages(ctx context.Context, filter map[string]string) ([]domain.ImageRef, error)
}
