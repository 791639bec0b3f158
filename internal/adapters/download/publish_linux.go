package download

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// publish moves src to dst, failing if dst exists.
func publish(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	// Filesystems without RENAME_NOREPLACE support.
	if !errors.Is(err, unix.EINVAL) && !errors.Is(err, unix.ENOSYS) {
		return &os.LinkError{Op: "renameat2", Old: src, New: dst, Err: err}
	}
	return linkPublish(src, dst)
}
