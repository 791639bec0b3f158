package download

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Launcher implements ports.WorkerLauncher by re-executing a binary.
type Launcher struct {
	executable string
	logger     ports.Logger
}

// NewLauncher creates a launcher that re-executes the running binary.
func NewLauncher(logger ports.Logger) (*Launcher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine executable path")
	}
	return NewLauncherFor(exe, logger), nil
}

// NewLauncherFor creates a launcher that runs executable as the worker.
func NewLauncherFor(executable string, logger ports.Logger) *Launcher {
	return &Launcher{executable: executable, logger: logger}
}

// WorkerArgs returns the command line passing req to the worker by value.
func WorkerArgs(req domain.WorkerRequest) []string {
	return []string{
		domain.DownloadWorkerCommand,
		"--url", req.URL,
		"--dest", req.Dest,
		"--uid", strconv.Itoa(req.UID),
		"--gid", strconv.Itoa(req.GID),
		"--setgid=" + strconv.FormatBool(req.SetGID),
		"--setuid=" + strconv.FormatBool(req.SetUID),
	}
}

// Launch runs the worker to completion and returns its exit code.
// The worker's stderr is relayed line by line to the logger.
func (l *Launcher) Launch(ctx context.Context, req domain.WorkerRequest) (int, error) {
	//nolint:gosec // G204: executable is our own binary, arguments are passed by value
	cmd := exec.CommandContext(ctx, l.executable, WorkerArgs(req)...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, zerr.Wrap(err, "failed to attach worker stderr")
	}

	if err := cmd.Start(); err != nil {
		return -1, zerr.With(zerr.Wrap(err, "failed to start download worker"), "executable", l.executable)
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		l.logger.Info(domain.DownloadWorkerCommand + ": " + scanner.Text())
	}

	err = cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, zerr.Wrap(err, "download worker did not complete")
	}
	return 0, nil
}
