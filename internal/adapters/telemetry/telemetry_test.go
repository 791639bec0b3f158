package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/telemetry"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_Start(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracer(provider)

	ctx, span := tracer.Start(context.Background(), "phase deps",
		ports.WithAttribute("arch", domain.ArchARMHF),
		ports.WithAttribute("attempt", 1),
	)
	require.NotNil(t, ctx)

	span.SetAttribute("cached", false)
	span.SetAttribute("exit_code", int64(3))
	_, err := span.Write([]byte("Reading package lists...\n"))
	require.NoError(t, err)
	span.RecordError(errors.New("boom"))
	span.RecordError(nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]

	assert.Equal(t, "phase deps", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Contains(t, got.Attributes(), attribute.String("arch", "armhf"))
	assert.Contains(t, got.Attributes(), attribute.Int("attempt", 1))
	assert.Contains(t, got.Attributes(), attribute.Bool("cached", false))
	assert.Contains(t, got.Attributes(), attribute.Int64("exit_code", 3))

	var output []string
	for _, event := range got.Events() {
		if event.Name != "output" {
			continue
		}
		for _, kv := range event.Attributes {
			output = append(output, kv.Value.AsString())
		}
	}
	assert.Equal(t, []string{"Reading package lists..."}, output)
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	ctx, span := telemetry.NewNoOpTracer().Start(context.Background(), "noop")
	assert.NotNil(t, ctx)

	n, err := span.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	log.EXPECT().Debug("phase build started")
	log.EXPECT().Info(gomock.Cond(func(msg string) bool {
		return assert.Contains(t, msg, "phase build finished in ") &&
			assert.Contains(t, msg, "(arch=amd64 name=bunsen-exit)")
	}))

	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := telemetry.NewOTelTracer(provider).Start(context.Background(), "phase build",
		ports.WithAttribute("name", "bunsen-exit"),
		ports.WithAttribute("arch", "amd64"),
	)
	span.End()
}

func TestBridge_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	log.EXPECT().Debug(gomock.Any())
	log.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return assert.Contains(t, msg, "phase deps failed after ") &&
			assert.Contains(t, msg, ": container runtime error")
	}))

	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := telemetry.NewOTelTracer(provider).Start(context.Background(), "phase deps")
	span.RecordError(errors.Join(domain.ErrContainerRuntime, errors.New("exit 100")))
	span.End()
}

func TestBridge_NilLogger(t *testing.T) {
	t.Parallel()

	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	_, span := telemetry.NewOTelTracer(provider).Start(context.Background(), "quiet")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}
