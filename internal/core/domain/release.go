package domain

// bunsenReleases maps BunsenLabs release and suite names to the Debian
// release they are built on.
var bunsenReleases = map[string]string{
	"beryllium":         "buzz",
	"bunsen-hydrogen":   "jessie",
	"buster-backports":  "buster",
	"helium":            "stretch",
	"hydrogen":          "jessie",
	"jessie-backports":  "jessie",
	"lithium":           "buster",
	"stretch-backports": "stretch",
}

// DebianRelease returns the Debian base release for a changelog distribution.
// Names without a mapping are already Debian releases and pass through.
func DebianRelease(distribution string) string {
	if base, ok := bunsenReleases[distribution]; ok {
		return base
	}
	return distribution
}
