// Package archive validates and unpacks untrusted source tarballs.
package archive

import (
	"strings"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// CheckArchive rejects member lists containing an absolute path or a
// leading parent-directory segment. It inspects the raw stored names and
// must run over the complete list before anything is written.
func CheckArchive(members []string) error {
	for _, name := range members {
		if strings.HasPrefix(name, "/") {
			return zerr.With(zerr.Wrap(domain.ErrArchiveSecurity, "absolute member path"), "member", name)
		}
		if name == ".." || strings.HasPrefix(name, "../") {
			return zerr.With(zerr.Wrap(domain.ErrArchiveSecurity, "member path escapes the archive root"), "member", name)
		}
	}
	return nil
}
