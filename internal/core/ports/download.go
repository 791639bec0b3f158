package ports

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
)

//go:generate mockgen -source=download.go -destination=mocks/mock_download.go -package=mocks

// Downloader fetches a remote artifact under privilege separation.
type Downloader interface {
	// Download fetches task.URL into task.Destination, which must not exist.
	Download(ctx context.Context, task domain.DownloadTask) error
}

// WorkerLauncher runs the isolated download worker process.
type WorkerLauncher interface {
	// Launch runs the worker to completion and returns its exit code.
	Launch(ctx context.Context, req domain.WorkerRequest) (int, error)
}

// Fetcher is the worker side of a download: drop privileges, then fetch.
type Fetcher interface {
	Fetch(ctx context.Context, req domain.WorkerRequest) error
}
