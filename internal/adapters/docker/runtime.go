// Package docker implements the container runtime port on the Docker Engine API.
package docker

import (
	"context"
	"errors"
	"io"
	"slices"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/google/go-containerregistry/pkg/name"
	"go.trai.ch/zerr"
)

// Runtime implements ports.ContainerRuntime.
type Runtime struct {
	cli    *client.Client
	logger ports.Logger
}

// NewRuntime wraps an Engine API client.
func NewRuntime(cli *client.Client, logger ports.Logger) *Runtime {
	return &Runtime{cli: cli, logger: logger}
}

// NewRuntimeFromEnv creates a runtime for the engine named by the DOCKER_* environment.
func NewRuntimeFromEnv(logger ports.Logger) (*Runtime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.Join(domain.ErrContainerRuntime, zerr.Wrap(err, "failed to create engine client"))
	}
	return NewRuntime(cli, logger), nil
}

// Close releases the underlying client.
func (r *Runtime) Close() error {
	return r.cli.Close()
}

// Run creates and starts a container. A missing image is pulled once.
func (r *Runtime) Run(ctx context.Context, spec domain.ContainerSpec) (string, error) {
	config := &container.Config{
		Image:  spec.Image,
		Cmd:    spec.Command,
		Labels: spec.Labels,
	}
	hostConfig := &container.HostConfig{
		Mounts: toMounts(spec.Mounts),
	}

	resp, err := r.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, spec.Name)
	if client.IsErrNotFound(err) {
		if pullErr := r.pull(ctx, spec.Image); pullErr != nil {
			return "", pullErr
		}
		resp, err = r.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, spec.Name)
	}
	if err != nil {
		return "", runtimeError(err, "failed to create container", "image", spec.Image)
	}

	for _, warning := range resp.Warnings {
		r.logger.Warn(warning)
	}

	if err := r.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		r.discard(resp.ID)
		return "", runtimeError(err, "failed to start container", "container", resp.ID)
	}

	return resp.ID, nil
}

func (r *Runtime) pull(ctx context.Context, ref string) error {
	parsed, err := name.ParseReference(ref)
	if err != nil {
		return runtimeError(err, "invalid image reference", "image", ref)
	}

	r.logger.Info("pulling " + parsed.Name())

	body, err := r.cli.ImagePull(ctx, parsed.Name(), image.PullOptions{})
	if err != nil {
		return runtimeError(err, "failed to pull image", "image", parsed.Name())
	}
	defer func() { _ = body.Close() }()

	// The pull completes only once the progress stream is drained.
	if _, err := io.Copy(io.Discard, body); err != nil {
		return runtimeError(err, "failed to pull image", "image", parsed.Name())
	}
	return nil
}

// discard removes a container that never reached the caller.
func (r *Runtime) discard(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), removeTimeout)
	defer cancel()
	if err := r.Remove(ctx, id); err != nil {
		r.logger.Error(err)
	}
}

const removeTimeout = 30 * time.Second

// Wait blocks until the container stops or timeout elapses.
// Expiry of the timeout is reported as an error.
func (r *Runtime) Wait(ctx context.Context, id string, timeout time.Duration) (domain.ExitStatus, error) {
	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	respCh, errCh := r.cli.ContainerWait(waitCtx, id, container.WaitConditionNotRunning)
	select {
	case resp := <-respCh:
		status := domain.ExitStatus{Code: resp.StatusCode}
		if resp.Error != nil {
			status.Error = resp.Error.Message
		}
		return status, nil
	case err := <-errCh:
		if ctx.Err() == nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return domain.ExitStatus{}, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrContainerRuntime, "container did not exit in time"), "container", id),
				"timeout", timeout.String(),
			)
		}
		return domain.ExitStatus{}, runtimeError(err, "failed to wait for container", "container", id)
	}
}

// Logs copies the combined stdout and stderr of the container to w.
func (r *Runtime) Logs(ctx context.Context, id string, follow bool, w io.Writer) error {
	body, err := r.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     follow,
	})
	if err != nil {
		return runtimeError(err, "failed to read container log", "container", id)
	}
	defer func() { _ = body.Close() }()

	if _, err := stdcopy.StdCopy(w, w, body); err != nil && ctx.Err() == nil {
		return runtimeError(err, "failed to read container log", "container", id)
	}
	return nil
}

// Commit snapshots the container as an untagged image carrying labels.
func (r *Runtime) Commit(ctx context.Context, id string, labels map[string]string) (string, error) {
	resp, err := r.cli.ContainerCommit(ctx, id, container.CommitOptions{
		Config: &container.Config{Labels: labels},
	})
	if err != nil {
		return "", runtimeError(err, "failed to commit container", "container", id)
	}
	return resp.ID, nil
}

// Remove force-removes the container with its anonymous volumes.
// An already removed container is not an error.
func (r *Runtime) Remove(ctx context.Context, id string) error {
	err := r.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true, RemoveVolumes: true})
	if err != nil && !client.IsErrNotFound(err) {
		return runtimeError(err, "failed to remove container", "container", id)
	}
	return nil
}

// ListImages returns the images carrying every label in filter, newest first.
func (r *Runtime) ListImages(ctx context.Context, filter map[string]string) ([]domain.ImageRef, error) {
	args := filters.NewArgs()
	for key, value := range filter {
		args.Add("label", key+"="+value)
	}

	summaries, err := r.cli.ImageList(ctx, image.ListOptions{Filters: args})
	if err != nil {
		return nil, runtimeError(err, "failed to list images")
	}

	return toImageRefs(summaries), nil
}

func toImageRefs(summaries []image.Summary) []domain.ImageRef {
	refs := make([]domain.ImageRef, 0, len(summaries))
	for _, s := range summaries {
		refs = append(refs, domain.ImageRef{
			ID:      s.ID,
			Labels:  s.Labels,
			Created: time.Unix(s.Created, 0),
		})
	}
	slices.SortStableFunc(refs, func(a, b domain.ImageRef) int {
		return b.Created.Compare(a.Created)
	})
	return refs
}

func toMounts(mounts []domain.Mount) []mount.Mount {
	out := make([]mount.Mount, 0, len(mounts))
	for _, m := range mounts {
		out = append(out, mount.Mount{
			Type:     mount.TypeBind,
			Source:   m.HostPath,
			Target:   m.ContainerPath,
			ReadOnly: m.ReadOnly,
		})
	}
	return out
}

func runtimeError(err error, msg string, kv ...string) error {
	wrapped := zerr.Wrap(err, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		wrapped = zerr.With(wrapped, kv[i], kv[i+1])
	}
	return errors.Join(domain.ErrContainerRuntime, wrapped)
}
