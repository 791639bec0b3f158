//go:build !linux

package download

func publish(src, dst string) error {
	return linkPublish(src, dst)
}
