package download

import (
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
)

// NewWorkerWithDrop creates a worker with a replaced privilege drop.
func NewWorkerWithDrop(logger ports.Logger, drop func(domain.WorkerRequest) error) *Worker {
	w := NewWorker(logger)
	w.drop = drop
	return w
}

// Publish exposes publish for tests.
var Publish = publish
