package download

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"
	"github.com/bunsenlabs/dockerbuild/internal/adapters/procfs"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// AgentNodeID is the unique identifier for the download agent Graft node.
	AgentNodeID graft.ID = "adapter.download.agent"
	// LauncherNodeID is the unique identifier for the worker launcher Graft node.
	LauncherNodeID graft.ID = "adapter.download.launcher"
	// WorkerNodeID is the unique identifier for the worker fetcher Graft node.
	WorkerNodeID graft.ID = "adapter.download.worker"
)

func init() {
	graft.Register(graft.Node[ports.WorkerLauncher]{
		ID:        LauncherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WorkerLauncher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			l, err := NewLauncher(log)
			if err != nil {
				return nil, err
			}
			return l, nil
		},
	})

	graft.Register(graft.Node[ports.Downloader]{
		ID:        AgentNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{procfs.NodeID, LauncherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Downloader, error) {
			probe, err := graft.Dep[ports.CapabilityProbe](ctx)
			if err != nil {
				return nil, err
			}
			launcher, err := graft.Dep[ports.WorkerLauncher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewAgent(probe, launcher, log), nil
		},
	})

	graft.Register(graft.Node[ports.Fetcher]{
		ID:        WorkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWorker(log), nil
		},
	})
}
