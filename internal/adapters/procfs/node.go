package procfs

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the capability probe Graft node.
const NodeID graft.ID = "adapter.procfs"

func init() {
	graft.Register(graft.Node[ports.CapabilityProbe]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CapabilityProbe, error) {
			return NewProbe(DefaultRoot), nil
		},
	})
}
