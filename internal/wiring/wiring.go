// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/archive"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/config"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/docker"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/download"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/github"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/identity"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/logger"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/manifest"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/procfs"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/scripts"
	_ "github.com/bunsenlabs/dockerbuild/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/bunsenlabs/dockerbuild/internal/app"
	_ "github.com/bunsenlabs/dockerbuild/internal/engine/orchestrator"
)
