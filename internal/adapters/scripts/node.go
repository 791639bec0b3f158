package scripts

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the script store Graft node.
const NodeID graft.ID = "adapter.scripts"

func init() {
	graft.Register(graft.Node[ports.ScriptStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptStore, error) {
			return NewStore(), nil
		},
	})
}
