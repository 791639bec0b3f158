package orchestrator

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/docker"    //nolint:depguard // Wired in engine wiring
	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/bunsenlabs/dockerbuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[ports.Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			docker.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.Builder, error) {
			runtime, err := graft.Dep[ports.ContainerRuntime](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(runtime, log, tracer), nil
		},
	})
}
