package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/app"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader    *mocks.MockConfigLoader
	logger    *mocks.MockLogger
	builder   *mocks.MockBuilder
	manifests *mocks.MockManifestReader
	scripts   *mocks.MockScriptStore
}

func newTestApp(t *testing.T) (*app.App, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		builder:   mocks.NewMockBuilder(ctrl),
		manifests: mocks.NewMockManifestReader(ctrl),
		scripts:   mocks.NewMockScriptStore(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(app.Dependencies{
		ConfigLoader: m.loader,
		Logger:       m.logger,
		Builder:      m.builder,
		Manifests:    m.manifests,
		Scripts:      m.scripts,
	})
	return a, m
}

func provide(a *app.App, m *testMocks) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: m.logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	a, m := newTestApp(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provide(a, m))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	a, m := newTestApp(t)
	m.loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultSettings(), nil)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	exitCode := run(context.Background(), []string{"build", "-s", t.TempDir(), "-a", "mips"}, io.Discard, provide(a, m))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Options verifies that options are applied to the App before execution.
func TestRun_Options(t *testing.T) {
	a, m := newTestApp(t)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "missing API credential")
	})
	m.loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultSettings(), nil)

	exitCode := run(context.Background(), []string{"batch", "bunsenlabs/bunsen-exit"}, io.Discard, provide(a, m),
		func(a *app.App) {
			a.WithGetenv(func(string) string { return "" })
		})
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	a, m := newTestApp(t)
	source := t.TempDir()
	output := t.TempDir()

	started := make(chan struct{})
	m.loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultSettings(), nil)
	m.manifests.EXPECT().Read(source).Return(domain.PackageIdentity{Name: "bunsen-exit"}, nil)
	m.scripts.EXPECT().Materialize(gomock.Any()).Return(nil)
	m.builder.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.BuildRequest) error {
			close(started)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return errors.New("timeout in mock")
			}
		})
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, context.Canceled)
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"build", "-s", source, "-o", output}, io.Discard, provide(a, m))
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("build did not start")
	}
	cancel()

	select {
	case ret := <-errCh:
		require.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
