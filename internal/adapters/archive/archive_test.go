package archive_test

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/archive"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports/mocks"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type entry struct {
	name     string
	typeflag byte
	body     string
	linkname string
	mode     int64
}

func writeTarball(t *testing.T, entries []entry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "src.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:       "pax_global_header",
		Typeflag:   tar.TypeXGlobalHeader,
		PAXRecords: map[string]string{"comment": "deadbeef"},
	}))

	for _, e := range entries {
		mode := e.mode
		if mode == 0 {
			mode = 0o644
		}
		header := &tar.Header{
			Name:     e.name,
			Typeflag: e.typeflag,
			Linkname: e.linkname,
			Mode:     mode,
			Size:     int64(len(e.body)),
		}
		if e.typeflag != tar.TypeReg {
			header.Size = 0
		}
		require.NoError(t, tw.WriteHeader(header))
		if e.typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func newExtractor(t *testing.T) *archive.Extractor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return archive.NewExtractor(log)
}

func TestCheckArchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		members []string
		wantErr bool
	}{
		{name: "relative paths", members: []string{"pkg-1.0/", "pkg-1.0/debian/control", "pkg-1.0/src/main.c"}},
		{name: "dot prefixed", members: []string{"./pkg/", "./pkg/file"}},
		{name: "empty list", members: nil},
		{name: "dot dot prefixed names", members: []string{"..data/x", "...", "pkg/..hidden"}},
		{name: "absolute path", members: []string{"pkg/", "/etc/passwd"}, wantErr: true},
		{name: "parent traversal", members: []string{"../escape"}, wantErr: true},
		{name: "bare parent", members: []string{"pkg/a", ".."}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := archive.CheckArchive(tt.members)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrArchiveSecurity)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	tarball := writeTarball(t, []entry{
		{name: "hello-1.2/", typeflag: tar.TypeDir, mode: 0o755},
		{name: "hello-1.2/debian/", typeflag: tar.TypeDir, mode: 0o755},
		{name: "hello-1.2/debian/control", typeflag: tar.TypeReg, body: "Source: hello\n"},
		{name: "hello-1.2/debian/rules", typeflag: tar.TypeReg, body: "#!/usr/bin/make -f\n", mode: 0o755},
		{name: "hello-1.2/README", typeflag: tar.TypeSymlink, linkname: "debian/control"},
		{name: "hello-1.2/fifo", typeflag: tar.TypeFifo},
	})

	dest := t.TempDir()
	top, err := newExtractor(t).Extract(t.Context(), tarball, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "hello-1.2"), top)

	data, err := os.ReadFile(filepath.Join(top, "debian", "control"))
	require.NoError(t, err)
	assert.Equal(t, "Source: hello\n", string(data))

	info, err := os.Stat(filepath.Join(top, "debian", "rules"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)

	link, err := os.Readlink(filepath.Join(top, "README"))
	require.NoError(t, err)
	assert.Equal(t, "debian/control", link)

	_, err = os.Lstat(filepath.Join(top, "fifo"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractor_Extract_MultipleTopLevel(t *testing.T) {
	t.Parallel()

	tarball := writeTarball(t, []entry{
		{name: "a.txt", typeflag: tar.TypeReg, body: "a"},
		{name: "b/", typeflag: tar.TypeDir, mode: 0o755},
	})

	dest := t.TempDir()
	top, err := newExtractor(t).Extract(t.Context(), tarball, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, top)
}

func TestExtractor_Extract_RejectsBeforeWriting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []entry
	}{
		{
			name: "traversal after valid members",
			entries: []entry{
				{name: "pkg/", typeflag: tar.TypeDir, mode: 0o755},
				{name: "pkg/file", typeflag: tar.TypeReg, body: "x"},
				{name: "../escape", typeflag: tar.TypeReg, body: "evil"},
			},
		},
		{
			name: "absolute member",
			entries: []entry{
				{name: "pkg/file", typeflag: tar.TypeReg, body: "x"},
				{name: "/etc/passwd", typeflag: tar.TypeReg, body: "root::0:0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tarball := writeTarball(t, tt.entries)
			dest := t.TempDir()

			_, err := newExtractor(t).Extract(t.Context(), tarball, dest)
			require.ErrorIs(t, err, domain.ErrArchiveSecurity)

			written, err := os.ReadDir(dest)
			require.NoError(t, err)
			assert.Empty(t, written)
		})
	}
}

func TestExtractor_Extract_NestedTraversal(t *testing.T) {
	t.Parallel()

	tarball := writeTarball(t, []entry{
		{name: "pkg/../../outside", typeflag: tar.TypeReg, body: "x"},
	})

	parent := t.TempDir()
	dest := filepath.Join(parent, "dest")
	require.NoError(t, os.Mkdir(dest, 0o755))

	_, err := newExtractor(t).Extract(t.Context(), tarball, dest)
	require.ErrorIs(t, err, domain.ErrArchiveSecurity)

	_, err = os.Stat(filepath.Join(parent, "outside"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractor_Extract_SymlinkParentEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	tarball := writeTarball(t, []entry{
		{name: "pkg/", typeflag: tar.TypeDir, mode: 0o755},
		{name: "pkg/out", typeflag: tar.TypeSymlink, linkname: outside},
		{name: "pkg/out/planted", typeflag: tar.TypeSymlink, linkname: "/etc/shadow"},
	})

	_, err := newExtractor(t).Extract(t.Context(), tarball, t.TempDir())
	require.ErrorIs(t, err, domain.ErrArchiveSecurity)

	_, err = os.Lstat(filepath.Join(outside, "planted"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractor_Extract_NotGzip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("not an archive"), 0o644))

	_, err := newExtractor(t).Extract(t.Context(), path, t.TempDir())
	require.ErrorIs(t, err, domain.ErrArchiveExtract)
}
