package ports

// IdentityResolver maps user and group names to numeric ids.
//
//go:generate mockgen -source=identity.go -destination=mocks/mock_identity.go -package=mocks
type IdentityResolver interface {
	Resolve(user, group string) (uid, gid int, err error)
}
