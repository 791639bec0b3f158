package ports

import "context"

// ArchiveExtractor unpacks an untrusted source tarball.
//
//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type ArchiveExtractor interface {
	// Extract validates every member of archive and unpacks it into destDir.
	// It returns the archive's single top-level directory, or destDir.
	Extract(ctx context.Context, archive, destDir string) (string, error)
}
