package docker

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the container runtime Graft node.
const NodeID graft.ID = "adapter.docker"

func init() {
	graft.Register(graft.Node[ports.ContainerRuntime]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ContainerRuntime, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			rt, err := NewRuntimeFromEnv(log)
			if err != nil {
				return nil, err
			}
			return rt, nil
		},
	})
}
