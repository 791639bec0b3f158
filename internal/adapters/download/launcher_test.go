package download_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/download"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorkerArgs(t *testing.T) {
	t.Parallel()

	args := download.WorkerArgs(domain.WorkerRequest{
		URL:    "https://example.com/a.tar.gz",
		Dest:   "/tmp/a.tar.gz",
		UID:    65534,
		GID:    65533,
		SetGID: true,
	})
	assert.Equal(t, []string{
		"download-worker",
		"--url", "https://example.com/a.tar.gz",
		"--dest", "/tmp/a.tar.gz",
		"--uid", "65534",
		"--gid", "65533",
		"--setgid=true",
		"--setuid=false",
	}, args)
}

func TestLauncher_RelaysStderrAndExitCode(t *testing.T) {
	t.Parallel()

	script := filepath.Join(t.TempDir(), "worker.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"got $1 $3\" >&2\necho \"color=$NO_COLOR\" >&2\nexit 3\n"), domain.ExecPerm))

	log := mocks.NewMockLogger(gomock.NewController(t))
	gomock.InOrder(
		log.EXPECT().Info("download-worker: got download-worker https://example.com/a"),
		log.EXPECT().Info("download-worker: color=1"),
	)

	code, err := download.NewLauncherFor(script, log).Launch(context.Background(), domain.WorkerRequest{
		URL:  "https://example.com/a",
		Dest: "/nonexistent",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestLauncher_MissingExecutable(t *testing.T) {
	t.Parallel()

	log := mocks.NewMockLogger(gomock.NewController(t))
	_, err := download.NewLauncherFor(filepath.Join(t.TempDir(), "missing"), log).
		Launch(context.Background(), domain.WorkerRequest{})
	require.Error(t, err)
}
