package ports

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
)

//go:generate mockgen -source=tags.go -destination=mocks/mock_tags.go -package=mocks

// TagSource lists the tags of a remote project.
type TagSource interface {
	// Tags returns every tag of project in listing order.
	Tags(ctx context.Context, project string) ([]domain.Tag, error)
}

// TagResolver resolves a tag pattern to one concrete tag.
type TagResolver interface {
	// Resolve selects the highest-versioned tag of project matching pattern.
	Resolve(ctx context.Context, project, pattern string) (domain.ResolvedTag, error)
}

// TagSourceFactory builds a TagSource for an API endpoint and credential.
type TagSourceFactory func(baseURL, token string) (TagSource, error)
