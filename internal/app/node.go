package app

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/archive"  //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/download" //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/github"   //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/identity" //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/adapters/scripts"  //nolint:depguard // Wired in app layer
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/bunsenlabs/dockerbuild/internal/engine/orchestrator"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			orchestrator.NodeID,
			github.NodeID,
			download.AgentNodeID,
			download.WorkerNodeID,
			archive.NodeID,
			manifest.NodeID,
			identity.NodeID,
			scripts.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var (
		deps Dependencies
		err  error
	)

	if deps.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Builder, err = graft.Dep[ports.Builder](ctx); err != nil {
		return nil, err
	}
	if deps.TagSources, err = graft.Dep[ports.TagSourceFactory](ctx); err != nil {
		return nil, err
	}
	if deps.Downloader, err = graft.Dep[ports.Downloader](ctx); err != nil {
		return nil, err
	}
	if deps.Fetcher, err = graft.Dep[ports.Fetcher](ctx); err != nil {
		return nil, err
	}
	if deps.Extractor, err = graft.Dep[ports.ArchiveExtractor](ctx); err != nil {
		return nil, err
	}
	if deps.Manifests, err = graft.Dep[ports.ManifestReader](ctx); err != nil {
		return nil, err
	}
	if deps.Identities, err = graft.Dep[ports.IdentityResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Scripts, err = graft.Dep[ports.ScriptStore](ctx); err != nil {
		return nil, err
	}

	return New(deps), nil
}
