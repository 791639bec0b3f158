package orchestrator_test

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
)

// fakeRuntime is an in-memory container runtime.
type fakeRuntime struct {
	mu sync.Mutex

	images     []domain.ImageRef
	containers map[string]domain.ContainerSpec
	runs       []domain.ContainerSpec
	removed    []string
	commits    int
	logCalls   []bool

	// exits maps a container script to the status its container exits with.
	exits map[string]domain.ExitStatus
	// waitErr is returned by Wait for the given script.
	waitErr map[string]error
	// output is written by Logs for every container.
	output string
	// hideCommits keeps committed images out of ListImages.
	hideCommits bool
	// removeCtxErr records the context error seen by Remove.
	removeCtxErr []error

	nextID int
	clock  int64
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		containers: make(map[string]domain.ContainerSpec),
		exits:      make(map[string]domain.ExitStatus),
		waitErr:    make(map[string]error),
	}
}

func (f *fakeRuntime) Run(_ context.Context, spec domain.ContainerSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := fmt.Sprintf("container-%d", f.nextID)
	f.containers[id] = spec
	f.runs = append(f.runs, spec)
	return id, nil
}

func (f *fakeRuntime) script(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	spec := f.containers[id]
	if len(spec.Command) == 0 {
		return ""
	}
	return spec.Command[0][strings.LastIndex(spec.Command[0], "/")+1:]
}

func (f *fakeRuntime) Wait(ctx context.Context, id string, _ time.Duration) (domain.ExitStatus, error) {
	script := f.script(id)

	f.mu.Lock()
	err := f.waitErr[script]
	status := f.exits[script]
	f.mu.Unlock()

	if err != nil {
		return domain.ExitStatus{}, err
	}
	if ctx.Err() != nil {
		return domain.ExitStatus{}, ctx.Err()
	}
	return status, nil
}

func (f *fakeRuntime) Logs(_ context.Context, _ string, follow bool, w io.Writer) error {
	f.mu.Lock()
	f.logCalls = append(f.logCalls, follow)
	output := f.output
	f.mu.Unlock()

	_, err := io.WriteString(w, output)
	return err
}

func (f *fakeRuntime) Commit(_ context.Context, id string, labels map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.commits++
	f.clock++
	imageID := fmt.Sprintf("sha256:image%d", f.commits)
	if !f.hideCommits {
		f.images = append(f.images, domain.ImageRef{
			ID:      imageID,
			Labels:  maps.Clone(labels),
			Created: time.Unix(f.clock, 0),
		})
	}
	return imageID, nil
}

func (f *fakeRuntime) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.removeCtxErr = append(f.removeCtxErr, ctx.Err())
	delete(f.containers, id)
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeRuntime) ListImages(_ context.Context, filter map[string]string) ([]domain.ImageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.ImageRef, 0)
	for _, img := range f.images {
		match := true
		for k, v := range filter {
			if img.Labels[k] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, img)
		}
	}
	slices.SortFunc(out, func(a, b domain.ImageRef) int { return b.Created.Compare(a.Created) })
	return out, nil
}

func (f *fakeRuntime) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.containers)
}
