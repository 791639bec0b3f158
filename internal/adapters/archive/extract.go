package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/klauspost/compress/gzip"
	"go.trai.ch/zerr"
)

// Extractor implements ports.ArchiveExtractor for gzip-compressed tarballs.
type Extractor struct {
	logger ports.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(logger ports.Logger) *Extractor {
	return &Extractor{logger: logger}
}

type symlink struct {
	path   string
	target string
}

// Extract checks every member of archivePath and then unpacks it into destDir.
// Only directories, regular files and symlinks are written; symlinks are
// created after all other entries.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) (string, error) {
	members, err := listMembers(archivePath)
	if err != nil {
		return "", err
	}

	if err := CheckArchive(members); err != nil {
		return "", err
	}

	if err := e.unpack(ctx, archivePath, destDir); err != nil {
		return "", err
	}

	return topLevelDir(members, destDir), nil
}

func openTar(archivePath string) (*tar.Reader, func(), error) {
	f, err := os.Open(archivePath) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return nil, nil, errors.Join(domain.ErrArchiveExtract,
			zerr.With(zerr.Wrap(err, "failed to open archive"), "archive", archivePath))
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Join(domain.ErrArchiveExtract,
			zerr.With(zerr.Wrap(err, "archive is not gzip compressed"), "archive", archivePath))
	}

	closer := func() {
		_ = gz.Close()
		_ = f.Close()
	}
	return tar.NewReader(gz), closer, nil
}

func listMembers(archivePath string) ([]string, error) {
	tr, closer, err := openTar(archivePath)
	if err != nil {
		return nil, err
	}
	defer closer()

	var members []string
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return members, nil
		}
		if err != nil {
			return nil, errors.Join(domain.ErrArchiveExtract,
				zerr.With(zerr.Wrap(err, "failed to read archive"), "archive", archivePath))
		}
		if header.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		members = append(members, header.Name)
	}
}

func (e *Extractor) unpack(ctx context.Context, archivePath, destDir string) error {
	tr, closer, err := openTar(archivePath)
	if err != nil {
		return err
	}
	defer closer()

	var links []symlink
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errors.Join(domain.ErrArchiveExtract,
				zerr.With(zerr.Wrap(err, "failed to read archive"), "archive", archivePath))
		}
		if header.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		target, err := memberPath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return extractError(err, header.Name)
			}
		case tar.TypeReg:
			if err := writeFile(target, header, tr); err != nil {
				return extractError(err, header.Name)
			}
		case tar.TypeSymlink:
			links = append(links, symlink{path: target, target: header.Linkname})
		default:
			e.logger.Debug(fmt.Sprintf("skipping archive member %s of type %q", header.Name, header.Typeflag))
		}
	}

	for _, link := range links {
		if err := createSymlink(destDir, link); err != nil {
			return err
		}
	}
	return nil
}

// memberPath maps a member name to a path inside destDir.
func memberPath(destDir, name string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(name))
	if rel == "." {
		return destDir, nil
	}
	if !filepath.IsLocal(rel) {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveSecurity, "member path escapes the archive root"), "member", name)
	}
	return filepath.Join(destDir, rel), nil
}

func writeFile(target string, header *tar.Header, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}

	perm := os.FileMode(domain.FilePerm)
	if header.FileInfo().Mode().Perm()&0o111 != 0 {
		perm = domain.ExecPerm
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm) //nolint:gosec // target is checked by memberPath
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil { //nolint:gosec // size is bounded by the archive
		_ = f.Close()
		return err
	}
	return f.Close()
}

func createSymlink(destDir string, link symlink) error {
	parent := filepath.Dir(link.path)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return extractError(err, link.path)
	}

	root, err := filepath.EvalSymlinks(destDir)
	if err != nil {
		return extractError(err, link.path)
	}
	resolved, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return extractError(err, link.path)
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return zerr.With(zerr.Wrap(domain.ErrArchiveSecurity, "symlink parent resolves outside the archive root"),
			"member", link.path)
	}

	if err := os.Symlink(link.target, link.path); err != nil {
		return extractError(err, link.path)
	}
	return nil
}

func extractError(err error, member string) error {
	return errors.Join(domain.ErrArchiveExtract, zerr.With(zerr.Wrap(err, "failed to extract member"), "member", member))
}

// topLevelDir returns the single top-level directory shared by every
// member, or destDir when there is none or more than one.
func topLevelDir(members []string, destDir string) string {
	var top string
	for _, name := range members {
		first, _, _ := strings.Cut(strings.TrimPrefix(name, "./"), "/")
		if first == "" || first == "." {
			continue
		}
		if top != "" && first != top {
			return destDir
		}
		top = first
	}

	if top == "" {
		return destDir
	}

	dir := filepath.Join(destDir, top)
	if info, err := os.Lstat(dir); err != nil || !info.IsDir() {
		return destDir
	}
	return dir
}
