package procfs_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/procfs"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStatus(t *testing.T, root string, pid int, capEff string) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := []byte(
		"Name:\tdockerbuild\nPid:\t" + strconv.Itoa(pid) + "\nCapPrm:\t000001ffffffffff\nCapEff:\t" + capEff + "\nCapBnd:\t000001ffffffffff\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), content, 0o644))
}

func TestProbe_Capabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		capEff      string
		wantNames   []string
		wantUnknown []int
	}{
		{
			name:        "no capabilities",
			capEff:      "0000000000000000",
			wantNames:   []string{},
			wantUnknown: []int{},
		},
		{
			name:        "chown only",
			capEff:      "0000000000000001",
			wantNames:   []string{"CAP_CHOWN"},
			wantUnknown: []int{},
		},
		{
			name:        "setgid and setuid",
			capEff:      "00000000000000c0",
			wantNames:   []string{domain.CapSetGID, domain.CapSetUID},
			wantUnknown: []int{},
		},
		{
			name:        "bit above the known table",
			capEff:      "8000000000000000",
			wantNames:   []string{},
			wantUnknown: []int{63},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeStatus(t, root, 42, tt.capEff)

			set, err := procfs.NewProbe(root).Capabilities(42)
			require.NoError(t, err)
			assert.Equal(t, 42, set.PID)
			assert.Equal(t, tt.wantNames, set.Names())
			assert.Equal(t, tt.wantUnknown, set.Unknown())
		})
	}
}

func TestProbe_Capabilities_FullMask(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeStatus(t, root, 1, "0000003fffffffff")

	set, err := procfs.NewProbe(root).Capabilities(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.KnownCapabilities(), set.Names())
	assert.Empty(t, set.Unknown())
}

func TestProbe_Capabilities_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing proc root", func(t *testing.T) {
		t.Parallel()
		_, err := procfs.NewProbe(filepath.Join(t.TempDir(), "nope")).Capabilities(1)
		require.ErrorIs(t, err, domain.ErrCapabilityUnsupported)
	})

	t.Run("missing process", func(t *testing.T) {
		t.Parallel()
		_, err := procfs.NewProbe(t.TempDir()).Capabilities(4242)
		require.ErrorIs(t, err, domain.ErrProcessNotFound)
	})

	t.Run("malformed mask", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeStatus(t, root, 7, "not-hex")
		_, err := procfs.NewProbe(root).Capabilities(7)
		require.ErrorIs(t, err, domain.ErrCapabilityUnsupported)
	})

	t.Run("field missing", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		dir := filepath.Join(root, "9")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte("Name:\tx\n"), 0o644))
		_, err := procfs.NewProbe(root).Capabilities(9)
		require.ErrorIs(t, err, domain.ErrCapabilityUnsupported)
	})
}

func TestProbe_HasCapabilities(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeStatus(t, root, 3, "00000000000000c0")
	probe := procfs.NewProbe(root)

	ok, err := probe.HasCapabilities(3, domain.CapSetGID, domain.CapSetUID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = probe.HasCapabilities(3, domain.CapSetUID, "CAP_SYS_ADMIN")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = probe.HasCapabilities(99)
	require.ErrorIs(t, err, domain.ErrProcessNotFound)
}

func TestProbe_CurrentProcess(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(procfs.DefaultRoot); err != nil {
		t.Skip("proc filesystem not available")
	}

	set, err := procfs.NewProbe(procfs.DefaultRoot).Capabilities(os.Getpid())
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), set.PID)
}
