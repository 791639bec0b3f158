package download

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"syscall"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Worker implements ports.Fetcher. It runs inside the re-executed worker process.
type Worker struct {
	client *http.Client
	logger ports.Logger
	drop   func(domain.WorkerRequest) error
}

// NewWorker creates a worker whose transport copies response bodies verbatim.
func NewWorker(logger ports.Logger) *Worker {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true
	return &Worker{
		client: &http.Client{Transport: transport},
		logger: logger,
		drop:   dropPrivileges,
	}
}

// Fetch drops privileges as permitted by req and then downloads req.URL to req.Dest.
func (w *Worker) Fetch(ctx context.Context, req domain.WorkerRequest) error {
	if err := w.drop(req); err != nil {
		return errors.Join(domain.ErrDownload, err)
	}
	w.logger.Debug("fetching " + req.URL)
	return w.fetch(ctx, req.URL, req.Dest)
}

// dropPrivileges changes group before user; after the uid change the
// process may no longer be allowed to change its group.
func dropPrivileges(req domain.WorkerRequest) error {
	if req.SetGID {
		if err := syscall.Setgroups([]int{req.GID}); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to set supplementary groups"), "gid", req.GID)
		}
		if err := syscall.Setgid(req.GID); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to set gid"), "gid", req.GID)
		}
	}
	if req.SetUID {
		if err := syscall.Setuid(req.UID); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to set uid"), "uid", req.UID)
		}
	}
	return nil
}

func (w *Worker) fetch(ctx context.Context, url, dest string) (err error) {
	//nolint:gosec // G304: dest is a staging path chosen by the agent
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm)
	if err != nil {
		return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, "failed to create download file"), "path", dest))
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(dest)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, "invalid download url"), "url", url))
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, "request failed"), "url", url))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrDownload, "unexpected http status"), "status", resp.Status),
			"url", url,
		)
	}

	if _, err = io.Copy(f, resp.Body); err != nil {
		return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, "failed to write download"), "path", dest))
	}
	if err = f.Sync(); err != nil {
		return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, "failed to sync download"), "path", dest))
	}
	if err = f.Close(); err != nil {
		return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, "failed to close download"), "path", dest))
	}
	return nil
}
