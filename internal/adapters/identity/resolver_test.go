package identity_test

import (
	"testing"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/identity"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve_Numeric(t *testing.T) {
	t.Parallel()

	uid, gid, err := identity.NewResolver().Resolve("65534", "65533")
	require.NoError(t, err)
	assert.Equal(t, 65534, uid)
	assert.Equal(t, 65533, gid)
}

func TestResolver_Resolve_Root(t *testing.T) {
	t.Parallel()

	uid, gid, err := identity.NewResolver().Resolve("root", "root")
	if err != nil {
		t.Skip("no root entry in the user database")
	}
	assert.Equal(t, 0, uid)
	assert.Equal(t, 0, gid)
}

func TestResolver_Resolve_Unknown(t *testing.T) {
	t.Parallel()

	_, _, err := identity.NewResolver().Resolve("no-such-user-dockerbuild", "0")
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, _, err = identity.NewResolver().Resolve("0", "no-such-group-dockerbuild")
	require.ErrorIs(t, err, domain.ErrConfiguration)
}
