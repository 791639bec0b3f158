// Package identity resolves user and group names to numeric ids.
package identity

import (
	"errors"
	"strconv"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/moby/sys/user"
	"go.trai.ch/zerr"
)

// Resolver implements ports.IdentityResolver using the system user and group databases.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the uid of userName and the gid of groupName.
// Numeric values are accepted as ids without a database lookup.
func (r *Resolver) Resolve(userName, groupName string) (int, int, error) {
	uid, err := lookupUID(userName)
	if err != nil {
		return 0, 0, err
	}
	gid, err := lookupGID(groupName)
	if err != nil {
		return 0, 0, err
	}
	return uid, gid, nil
}

func lookupUID(name string) (int, error) {
	if id, err := strconv.Atoi(name); err == nil && id >= 0 {
		return id, nil
	}
	u, err := user.LookupUser(name)
	if err != nil {
		return 0, errors.Join(domain.ErrConfiguration,
			zerr.With(zerr.Wrap(err, "unknown unprivileged user"), "user", name))
	}
	return u.Uid, nil
}

func lookupGID(name string) (int, error) {
	if id, err := strconv.Atoi(name); err == nil && id >= 0 {
		return id, nil
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, errors.Join(domain.ErrConfiguration,
			zerr.With(zerr.Wrap(err, "unknown unprivileged group"), "group", name))
	}
	return g.Gid, nil
}
