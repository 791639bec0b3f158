// Package download fetches remote artifacts in a re-executed worker process
// that drops to an unprivileged identity before any network access.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const stagingPattern = ".dockerbuild-download-*"

// Agent implements ports.Downloader.
type Agent struct {
	probe    ports.CapabilityProbe
	launcher ports.WorkerLauncher
	logger   ports.Logger

	pid  int
	euid int
	egid int
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithProcess overrides the identity the agent assumes for the current process.
func WithProcess(pid, euid, egid int) AgentOption {
	return func(a *Agent) {
		a.pid = pid
		a.euid = euid
		a.egid = egid
	}
}

// NewAgent creates a download agent for the current process.
func NewAgent(
	probe ports.CapabilityProbe,
	launcher ports.WorkerLauncher,
	logger ports.Logger,
	opts ...AgentOption,
) *Agent {
	a := &Agent{
		probe:    probe,
		launcher: launcher,
		logger:   logger,
		pid:      os.Getpid(),
		euid:     os.Geteuid(),
		egid:     os.Getegid(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Download fetches task.URL into task.Destination through the worker.
// On failure the destination is left absent.
func (a *Agent) Download(ctx context.Context, task domain.DownloadTask) error {
	if err := checkDestination(task.Destination); err != nil {
		return err
	}

	setGID, setUID, err := a.privilegeDrop(task)
	if err != nil {
		return err
	}

	parent := filepath.Dir(task.Destination)
	staging, err := os.MkdirTemp(parent, stagingPattern)
	if err != nil {
		return downloadError(err, "failed to create staging directory", task.Destination)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			a.logger.Error(zerr.With(zerr.Wrap(rmErr, "failed to remove staging directory"), "path", staging))
		}
	}()

	if setGID || setUID {
		if err := os.Chown(staging, ownerOf(setUID, task.UID), ownerOf(setGID, task.GID)); err != nil {
			return downloadError(err, "failed to hand over staging directory", task.Destination)
		}
	}

	req := domain.WorkerRequest{
		URL:    task.URL,
		Dest:   filepath.Join(staging, filepath.Base(task.Destination)),
		UID:    task.UID,
		GID:    task.GID,
		SetGID: setGID,
		SetUID: setUID,
	}

	a.logger.Debug(fmt.Sprintf("downloading %s (setgid=%t setuid=%t)", task.URL, setGID, setUID))

	code, err := a.launcher.Launch(ctx, req)
	if err != nil {
		return downloadError(err, "failed to run download worker", task.Destination)
	}
	if code != 0 {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrDownload, "download worker failed"), "exit_code", code),
			"url", task.URL,
		)
	}

	if err := publish(req.Dest, task.Destination); err != nil {
		return downloadError(err, "failed to publish download", task.Destination)
	}

	info, err := os.Lstat(task.Destination)
	if err != nil {
		return downloadError(err, "download missing after worker run", task.Destination)
	}
	if !info.Mode().IsRegular() {
		return zerr.With(zerr.Wrap(domain.ErrDownload, "download is not a regular file"), "path", task.Destination)
	}

	return nil
}

// privilegeDrop decides which identity changes the worker may perform.
// CAP_SETGID and CAP_SETUID are judged separately. Unknown capabilities
// fall back to the effective uid.
func (a *Agent) privilegeDrop(task domain.DownloadTask) (setGID, setUID bool, err error) {
	var canSetGID, canSetUID bool

	caps, err := a.probe.Capabilities(a.pid)
	switch {
	case err == nil:
		canSetGID = caps.Has(domain.CapSetGID)
		canSetUID = caps.Has(domain.CapSetUID)
	case errors.Is(err, domain.ErrCapabilityUnsupported), errors.Is(err, domain.ErrProcessNotFound):
		canSetGID = a.euid == 0
		canSetUID = canSetGID
		a.logger.Warn(fmt.Sprintf("process capabilities unknown, assuming privileged=%t", canSetGID))
	default:
		return false, false, errors.Join(domain.ErrDownload, err)
	}

	return canSetGID && task.GID != a.egid, canSetUID && task.UID != a.euid, nil
}

func checkDestination(dest string) error {
	if _, err := os.Lstat(dest); err == nil {
		return zerr.With(zerr.Wrap(domain.ErrDownload, "destination already exists"), "path", dest)
	} else if !os.IsNotExist(err) {
		return downloadError(err, "failed to inspect destination", dest)
	}

	parent := filepath.Dir(dest)
	info, err := os.Stat(parent)
	if err != nil {
		return downloadError(err, "destination directory is not accessible", dest)
	}
	if !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrDownload, "destination parent is not a directory"), "path", parent)
	}
	return nil
}

func ownerOf(change bool, id int) int {
	if change {
		return id
	}
	return -1
}

func downloadError(err error, msg, path string) error {
	return errors.Join(domain.ErrDownload, zerr.With(zerr.Wrap(err, msg), "path", path))
}
