// Package procfs reads process capability state from the proc filesystem.
package procfs

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultRoot is the mount point of the proc filesystem.
const DefaultRoot = "/proc"

const capEffField = "CapEff"

// Probe implements ports.CapabilityProbe by reading /proc/<pid>/status.
type Probe struct {
	root string
}

// NewProbe creates a Probe reading below root.
func NewProbe(root string) *Probe {
	return &Probe{root: root}
}

// Capabilities decodes the effective capability set of pid.
func (p *Probe) Capabilities(pid int) (domain.CapabilitySet, error) {
	if _, err := os.Stat(p.root); err != nil {
		return domain.CapabilitySet{}, zerr.With(
			zerr.Wrap(domain.ErrCapabilityUnsupported, "proc filesystem is not available"), "root", p.root)
	}

	statusPath := filepath.Join(p.root, strconv.Itoa(pid), "status")
	f, err := os.Open(statusPath) //nolint:gosec // path is built from the proc root and a pid
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CapabilitySet{}, zerr.With(
				zerr.Wrap(domain.ErrProcessNotFound, "no status record for process"), "pid", pid)
		}
		return domain.CapabilitySet{}, errors.Join(
			domain.ErrCapabilityUnsupported, zerr.With(zerr.Wrap(err, "failed to open process status"), "pid", pid))
	}
	defer func() { _ = f.Close() }()

	raw, err := readField(f, capEffField)
	if err != nil {
		return domain.CapabilitySet{}, errors.Join(
			domain.ErrCapabilityUnsupported, zerr.With(zerr.Wrap(err, "failed to read process status"), "pid", pid))
	}

	mask, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return domain.CapabilitySet{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrCapabilityUnsupported, "malformed effective capability field"), "value", raw),
			"pid", pid)
	}

	return domain.DecodeCapabilities(pid, mask), nil
}

// HasCapabilities reports whether pid holds every required capability.
func (p *Probe) HasCapabilities(pid int, required ...string) (bool, error) {
	set, err := p.Capabilities(pid)
	if err != nil {
		return false, err
	}
	return set.Has(required...), nil
}

// readField returns the value of the first "name:" line in r.
func readField(r io.Reader, name string) (string, error) {
	prefix := name + ":"
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if value, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(value), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", zerr.With(zerr.New("field not found"), "field", name)
}
