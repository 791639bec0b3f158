package github

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the tag source factory Graft node.
const NodeID graft.ID = "adapter.github"

func init() {
	graft.Register(graft.Node[ports.TagSourceFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TagSourceFactory, error) {
			return func(baseURL, token string) (ports.TagSource, error) {
				client, err := NewClient(Config{BaseURL: baseURL, Token: token})
				if err != nil {
					return nil, err
				}
				return client, nil
			}, nil
		},
	})
}
