package download

import "os"

// linkPublish creates dst as a hard link to src, which fails if dst exists,
// then removes src.
func linkPublish(src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
