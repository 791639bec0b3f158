package archive

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/logger"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the archive extractor Graft node.
const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[ports.ArchiveExtractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ArchiveExtractor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(log), nil
		},
	})
}
