package manifest_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/manifest"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelogText = `bunsen-exit (1:11.2.0-1) beryllium; urgency=medium

  * New upstream release.

 -- BunsenLabs Maintainers <maint@bunsenlabs.org>  Sun, 12 Jan 2025 10:00:00 +0100

bunsen-exit (11.1.0-1) lithium; urgency=medium

  * Older release.

 -- BunsenLabs Maintainers <maint@bunsenlabs.org>  Sat, 11 Jan 2020 10:00:00 +0100
`

const controlText = `Source: bunsen-exit
Section: x11
Priority: optional
Build-Depends: debhelper-compat (= 13)

Package: bunsen-exit
Architecture: all
Description: exit dialog
`

func writePackage(t *testing.T, changelog, control string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "debian"), 0o755))
	if changelog != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "debian", "changelog"), []byte(changelog), 0o644))
	}
	if control != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "debian", "control"), []byte(control), 0o644))
	}
	return dir
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	dir := writePackage(t, changelogText, controlText)

	id, err := manifest.NewReader().Read(dir)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(controlText))
	assert.Equal(t, domain.PackageIdentity{
		Name:               "bunsen-exit",
		FullVersion:        "1:11.2.0-1",
		UpstreamVersion:    "11.2.0",
		Distribution:       "beryllium",
		TargetDistribution: "buzz",
		ManifestDigest:     hex.EncodeToString(sum[:]),
		SourceDir:          dir,
	}, id)
	assert.Equal(t, "buzz:"+hex.EncodeToString(sum[:]), id.SourceID())
}

func TestReader_Read_ControlChangesDigest(t *testing.T) {
	t.Parallel()

	first, err := manifest.NewReader().Read(writePackage(t, changelogText, controlText))
	require.NoError(t, err)
	second, err := manifest.NewReader().Read(writePackage(t, changelogText, controlText+"Depends: yad\n"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ManifestDigest, second.ManifestDigest)
	assert.NotEqual(t,
		domain.NewDependencyImageKey(first, domain.ArchAMD64),
		domain.NewDependencyImageKey(second, domain.ArchAMD64))
}

func TestReader_Read_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		changelog string
		control   string
	}{
		{name: "missing changelog", control: controlText},
		{name: "missing control", changelog: changelogText},
		{name: "garbage changelog", changelog: "not a changelog\n", control: controlText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := manifest.NewReader().Read(writePackage(t, tt.changelog, tt.control))
			require.ErrorIs(t, err, domain.ErrManifest)
		})
	}
}
