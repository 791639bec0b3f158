package identity

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the identity resolver Graft node.
const NodeID graft.ID = "adapter.identity"

func init() {
	graft.Register(graft.Node[ports.IdentityResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.IdentityResolver, error) {
			return NewResolver(), nil
		},
	})
}
