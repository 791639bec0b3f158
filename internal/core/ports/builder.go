package ports

import (
	"context"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
)

// Builder runs the two-phase container build of one package.
//
//go:generate mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	Build(ctx context.Context, req domain.BuildRequest) error
}
