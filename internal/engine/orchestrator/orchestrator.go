// Package orchestrator runs the two-phase container build of a source package.
package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/google/uuid"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// removeTimeout bounds container removal, which runs even after cancellation.
const removeTimeout = 2 * time.Minute

// Orchestrator implements ports.Builder.
type Orchestrator struct {
	runtime ports.ContainerRuntime
	logger  ports.Logger
	tracer  ports.Tracer
}

// New creates an Orchestrator.
func New(runtime ports.ContainerRuntime, logger ports.Logger, tracer ports.Tracer) *Orchestrator {
	return &Orchestrator{
		runtime: runtime,
		logger:  logger,
		tracer:  tracer,
	}
}

// Build ensures the dependency image for the request and then builds the package in it.
func (o *Orchestrator) Build(ctx context.Context, req domain.BuildRequest) error {
	image, err := o.EnsureDependencyImage(ctx, req)
	if err != nil {
		return err
	}
	return o.RunBuild(ctx, req, image)
}

// EnsureDependencyImage returns the cached dependency image for the request,
// building and committing it first if none exists.
func (o *Orchestrator) EnsureDependencyImage(ctx context.Context, req domain.BuildRequest) (domain.ImageRef, error) {
	key := domain.NewDependencyImageKey(req.Identity, req.Architecture)

	ctx, span := o.startPhase(ctx, domain.PhaseDependencies, req, key)
	defer span.End()

	image, found, err := o.lookup(ctx, key)
	if err != nil {
		span.RecordError(err)
		return domain.ImageRef{}, err
	}
	if found {
		span.SetAttribute("cached", true)
		o.logger.Info(fmt.Sprintf("using dependency image %s for %s", shortID(image.ID), key.SourceID()))
		return image, nil
	}
	span.SetAttribute("cached", false)

	spec := domain.ContainerSpec{
		Name:    containerName(domain.PhaseDependencies),
		Image:   domain.BaseImage(req.Architecture, req.Identity.TargetDistribution),
		Command: []string{domain.ScriptCommand(domain.InstallDependenciesScript)},
		Labels:  key.Labels(req.Identity),
		Mounts:  mounts(req, domain.PhaseDependencies),
	}

	image, err = o.buildDependencyImage(ctx, spec, key, req.Timeout, span)
	if err != nil {
		span.RecordError(err)
		return domain.ImageRef{}, err
	}
	return image, nil
}

func (o *Orchestrator) buildDependencyImage(
	ctx context.Context,
	spec domain.ContainerSpec,
	key domain.DependencyImageKey,
	timeout time.Duration,
	out io.Writer,
) (domain.ImageRef, error) {
	o.logger.Info(fmt.Sprintf("building dependency image from %s", spec.Image))

	id, err := o.runtime.Run(ctx, spec)
	if err != nil {
		return domain.ImageRef{}, err
	}

	status, err := o.runContainer(ctx, id, timeout, out)
	if err == nil && !status.Success() {
		err = exitError(domain.PhaseDependencies, status)
	}
	if err != nil {
		o.discard(ctx, id)
		return domain.ImageRef{}, err
	}

	imageID, err := o.runtime.Commit(ctx, id, spec.Labels)
	if err != nil {
		o.discard(ctx, id)
		return domain.ImageRef{}, err
	}
	if err := o.remove(ctx, id); err != nil {
		return domain.ImageRef{}, err
	}

	image, found, err := o.lookup(ctx, key)
	if err != nil {
		return domain.ImageRef{}, err
	}
	if !found {
		return domain.ImageRef{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrContainerRuntime, "committed image not found by label"), "image", imageID),
			"source_id", key.SourceID(),
		)
	}

	o.logger.Info(fmt.Sprintf("committed dependency image %s", shortID(image.ID)))
	return image, nil
}

// RunBuild runs the build script in a fresh container from image.
func (o *Orchestrator) RunBuild(ctx context.Context, req domain.BuildRequest, image domain.ImageRef) error {
	key := domain.NewDependencyImageKey(req.Identity, req.Architecture)

	ctx, span := o.startPhase(ctx, domain.PhaseBuild, req, key)
	defer span.End()

	spec := domain.ContainerSpec{
		Name:    containerName(domain.PhaseBuild),
		Image:   image.ID,
		Command: []string{domain.ScriptCommand(domain.BuildScript)},
		Mounts:  mounts(req, domain.PhaseBuild),
	}

	id, err := o.runtime.Run(ctx, spec)
	if err != nil {
		span.RecordError(err)
		return err
	}

	status, err := o.runContainer(ctx, id, req.Timeout, span)
	if err == nil && !status.Success() {
		err = exitError(domain.PhaseBuild, status)
	}
	if err != nil {
		o.dumpLog(ctx, id, status)
		o.discard(ctx, id)
		span.RecordError(err)
		return err
	}

	if err := o.remove(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// runContainer streams the container log while waiting for it to exit.
// It returns once both the stream and the wait have ended.
func (o *Orchestrator) runContainer(
	ctx context.Context,
	id string,
	timeout time.Duration,
	out io.Writer,
) (domain.ExitStatus, error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lw := newLogWriter(o.logger)
		defer func() { _ = lw.Close() }()

		if err := o.runtime.Logs(gctx, id, true, io.MultiWriter(lw, out)); err != nil && gctx.Err() == nil {
			o.logger.Warn("log stream of " + shortID(id) + " ended early: " + err.Error())
		}
		return nil
	})

	var status domain.ExitStatus
	g.Go(func() error {
		var err error
		status, err = o.runtime.Wait(gctx, id, timeout)
		return err
	})

	err := g.Wait()
	return status, err
}

// dumpLog logs the complete output of a failed container.
func (o *Orchestrator) dumpLog(ctx context.Context, id string, status domain.ExitStatus) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), removeTimeout)
	defer cancel()

	var buf bytes.Buffer
	if err := o.runtime.Logs(ctx, id, false, &buf); err != nil {
		o.logger.Error(err)
		return
	}

	msg := fmt.Sprintf("container %s exited with code %d", shortID(id), status.Code)
	if status.Error != "" {
		msg += ": " + status.Error
	}
	if buf.Len() > 0 {
		msg += "\n" + string(bytes.TrimRight(buf.Bytes(), "\n"))
	}
	o.logger.Warn(msg)
}

// remove force-removes a container even when ctx is already cancelled.
func (o *Orchestrator) remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), removeTimeout)
	defer cancel()
	return o.runtime.Remove(ctx, id)
}

// discard removes a container on a failure path, where a removal error
// must not mask the original failure.
func (o *Orchestrator) discard(ctx context.Context, id string) {
	if err := o.remove(ctx, id); err != nil {
		o.logger.Error(err)
	}
}

func (o *Orchestrator) lookup(ctx context.Context, key domain.DependencyImageKey) (domain.ImageRef, bool, error) {
	images, err := o.runtime.ListImages(ctx, key.Filter())
	if err != nil {
		return domain.ImageRef{}, false, err
	}
	if len(images) == 0 {
		return domain.ImageRef{}, false, nil
	}
	return images[0], true, nil
}

func (o *Orchestrator) startPhase(
	ctx context.Context,
	phase domain.Phase,
	req domain.BuildRequest,
	key domain.DependencyImageKey,
) (context.Context, ports.Span) {
	return o.tracer.Start(ctx,
		fmt.Sprintf("%s %s/%s", phase, req.Identity.Name, req.Architecture),
		ports.WithAttribute("name", req.Identity.Name),
		ports.WithAttribute("version", req.Identity.FullVersion),
		ports.WithAttribute("arch", req.Architecture.String()),
		ports.WithAttribute("source_id", key.SourceID()),
		ports.WithAttribute("fingerprint", key.Fingerprint()),
	)
}

func mounts(req domain.BuildRequest, phase domain.Phase) []domain.Mount {
	m := []domain.Mount{
		{HostPath: req.ScriptsDir, ContainerPath: domain.ScriptsMountPath, ReadOnly: true},
		{HostPath: req.Identity.SourceDir, ContainerPath: domain.PackageMountPath, ReadOnly: true},
	}
	if phase == domain.PhaseBuild {
		m = append(m, domain.Mount{HostPath: req.OutputDir, ContainerPath: domain.OutputMountPath})
	}
	return m
}

func containerName(phase domain.Phase) string {
	return "dockerbuild-" + string(phase) + "-" + uuid.NewString()
}

func exitError(phase domain.Phase, status domain.ExitStatus) error {
	err := zerr.With(
		zerr.Wrap(domain.ErrContainerRuntime, string(phase)+" container failed"),
		"exit_code", status.Code,
	)
	if status.Error != "" {
		err = zerr.With(err, "error", status.Error)
	}
	return err
}

func shortID(id string) string {
	const n = 12
	id = strings.TrimPrefix(id, "sha256:")
	if len(id) > n {
		return id[:n]
	}
	return id
}
