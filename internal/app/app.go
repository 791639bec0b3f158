// Package app implements the application layer for dockerbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/adapters/detector"
	"github.com/bunsenlabs/dockerbuild/internal/adapters/scripts"
	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/bunsenlabs/dockerbuild/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Dependencies groups the collaborators of an App.
type Dependencies struct {
	ConfigLoader ports.ConfigLoader
	Logger       ports.Logger
	Builder      ports.Builder
	TagSources   ports.TagSourceFactory
	Downloader   ports.Downloader
	Fetcher      ports.Fetcher
	Extractor    ports.ArchiveExtractor
	Manifests    ports.ManifestReader
	Identities   ports.IdentityResolver
	Scripts      ports.ScriptStore
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	builder      ports.Builder
	tagSources   ports.TagSourceFactory
	downloader   ports.Downloader
	fetcher      ports.Fetcher
	extractor    ports.ArchiveExtractor
	manifests    ports.ManifestReader
	identities   ports.IdentityResolver
	scripts      ports.ScriptStore

	settings     domain.Settings
	getenv       func(string) string
	detectFormat func() domain.LogFormat
}

// New creates a new App instance with default settings.
func New(deps Dependencies) *App {
	return &App{
		configLoader: deps.ConfigLoader,
		logger:       deps.Logger,
		builder:      deps.Builder,
		tagSources:   deps.TagSources,
		downloader:   deps.Downloader,
		fetcher:      deps.Fetcher,
		extractor:    deps.Extractor,
		manifests:    deps.Manifests,
		identities:   deps.Identities,
		scripts:      deps.Scripts,
		settings:     domain.DefaultSettings(),
		getenv:       os.Getenv,
		detectFormat: detector.DetectEnvironment,
	}
}

// WithGetenv replaces the environment lookup. It is used by tests.
func (a *App) WithGetenv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// WithFormatDetector replaces the terminal detection used for the auto log format.
func (a *App) WithFormatDetector(detect func() domain.LogFormat) *App {
	a.detectFormat = detect
	return a
}

// Settings returns the resolved configuration.
func (a *App) Settings() domain.Settings {
	return a.settings
}

// GlobalOptions holds the flags shared by every command.
// Empty values leave the configured setting unchanged.
type GlobalOptions struct {
	ConfigPath  string
	Debug       bool
	LogFormat   string
	UnprivUser  string
	UnprivGroup string
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetDebug(enable bool)
}

// Configure loads the option file, applies opts on top of it and sets up the logger.
func (a *App) Configure(opts GlobalOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	settings, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.LogFormat != "" {
		format := domain.LogFormat(opts.LogFormat)
		switch format {
		case domain.LogFormatAuto, domain.LogFormatPretty, domain.LogFormatJSON:
			settings.LogFormat = format
		default:
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, "invalid log format"), "log_format", opts.LogFormat)
		}
	}
	if opts.UnprivUser != "" {
		settings.UnprivUser = opts.UnprivUser
	}
	if opts.UnprivGroup != "" {
		settings.UnprivGroup = opts.UnprivGroup
	}

	if l, ok := a.logger.(configurableLogger); ok {
		format := detector.ResolveFormat(a.detectFormat(), settings.LogFormat)
		l.SetJSON(format == domain.LogFormatJSON)
		l.SetDebug(opts.Debug)
	}

	a.settings = settings
	return nil
}

// BuildOptions configures a single package build.
type BuildOptions struct {
	Source       string
	Output       string
	Architecture string
	Timeout      time.Duration
	ScriptsDir   string
}

// Build builds the package source tree opts.Source for one architecture.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	if opts.Source == "" {
		return zerr.Wrap(domain.ErrConfiguration, "source directory is required")
	}

	arch := a.settings.Architecture
	if opts.Architecture != "" {
		parsed, err := domain.ParseArchitecture(opts.Architecture)
		if err != nil {
			return err
		}
		arch = parsed
	}

	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve source directory"), "path", opts.Source)
	}

	output, err := a.outputDir(opts.Output)
	if err != nil {
		return err
	}

	identity, err := a.manifests.Read(source)
	if err != nil {
		return err
	}

	scriptsDir := opts.ScriptsDir
	if scriptsDir == "" {
		scriptsDir = a.settings.ScriptsDir
	}
	dir, cleanup, err := a.prepareScripts(scriptsDir)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.builder.Build(ctx, domain.BuildRequest{
		Identity:     identity,
		Architecture: arch,
		ScriptsDir:   dir,
		OutputDir:    output,
		Timeout:      a.timeout(opts.Timeout),
	})
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	Entries   []string
	OutputDir string
	BuildDir  string
	Timeout   time.Duration
	KeepGoing bool
}

// Batch resolves, downloads and builds every entry of opts.
// Entries are processed in order. Each stage completes for every job
// before the next stage starts.
//
//nolint:cyclop,funlen // orchestration function
func (a *App) Batch(ctx context.Context, opts BatchOptions) error {
	token := a.getenv(domain.GitHubTokenEnv)
	if token == "" {
		return zerr.With(zerr.Wrap(domain.ErrConfiguration, "missing API credential"), "env", domain.GitHubTokenEnv)
	}

	if len(opts.Entries) == 0 {
		return zerr.Wrap(domain.ErrInvalidJobSpec, "no projects given")
	}

	jobs := make([]domain.BuildJob, 0, len(opts.Entries))
	for _, entry := range opts.Entries {
		job, err := domain.ParseJobSpec(entry)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	output, err := a.outputDir(opts.OutputDir)
	if err != nil {
		return err
	}
	buildDir, err := a.outputDir(opts.BuildDir)
	if err != nil {
		return err
	}

	uid, gid, err := a.identities.Resolve(a.settings.UnprivUser, a.settings.UnprivGroup)
	if err != nil {
		return err
	}
	a.logger.Debug(fmt.Sprintf("resolved unprivileged identity %d:%d", uid, gid))

	source, err := a.tagSources(a.settings.GitHubAPIURL, token)
	if err != nil {
		return err
	}
	tags := resolver.New(source, a.logger)

	dir, cleanup, err := a.prepareScripts(a.settings.ScriptsDir)
	if err != nil {
		return err
	}
	defer cleanup()

	var failures []error
	fail := func(job *domain.BuildJob, err error) error {
		err = zerr.Wrap(err, job.Project)
		if !opts.KeepGoing {
			return err
		}
		a.logger.Error(err)
		failures = append(failures, err)
		return nil
	}

	a.logger.Info("resolving tags...")
	for i := range jobs {
		job := &jobs[i]
		resolved, err := tags.Resolve(ctx, job.Project, job.TagPattern)
		if err != nil {
			if err := fail(job, err); err != nil {
				return err
			}
			continue
		}
		job.Resolved = resolved
	}

	a.logger.Info("downloading tarballs...")
	for i := range jobs {
		job := &jobs[i]
		if job.Resolved.Tag == "" {
			continue
		}
		dest := filepath.Join(buildDir, job.TarballName())
		err := a.downloader.Download(ctx, domain.DownloadTask{
			URL:         job.Resolved.ArtifactURL,
			Destination: dest,
			UID:         uid,
			GID:         gid,
		})
		if err != nil {
			if err := fail(job, err); err != nil {
				return err
			}
			continue
		}
		job.Tarball = dest
	}

	a.logger.Info("building projects...")
	for i := range jobs {
		job := &jobs[i]
		if job.Tarball == "" {
			continue
		}
		for _, arch := range job.Architectures {
			if err := a.buildJob(ctx, job, arch, buildDir, dir, output, opts.Timeout); err != nil {
				err = zerr.With(zerr.Wrap(err, "build failed"), "architecture", arch.String())
				if err := fail(job, err); err != nil {
					return err
				}
				break
			}
		}
	}

	if len(failures) > 0 {
		return errors.Join(append([]error{domain.ErrBatchFailed}, failures...)...)
	}
	return nil
}

func (a *App) buildJob(
	ctx context.Context,
	job *domain.BuildJob,
	arch domain.Architecture,
	buildDir, scriptsDir, output string,
	timeout time.Duration,
) error {
	a.logger.Info(fmt.Sprintf("building %s %s for %s from %s", job.Project, job.Resolved.Tag, arch, job.Tarball))

	workDir, err := os.MkdirTemp(buildDir, "."+job.Name()+"-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build directory"), "path", buildDir)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to remove %s: %v", workDir, err))
		}
	}()
	a.logger.Debug("extracting into " + workDir)

	sourceDir, err := a.extractor.Extract(ctx, job.Tarball, workDir)
	if err != nil {
		return err
	}

	identity, err := a.manifests.Read(sourceDir)
	if err != nil {
		return err
	}

	return a.builder.Build(ctx, domain.BuildRequest{
		Identity:     identity,
		Architecture: arch,
		ScriptsDir:   scriptsDir,
		OutputDir:    output,
		Timeout:      a.timeout(timeout),
	})
}

// Fetch performs the worker side of a privilege-separated download.
func (a *App) Fetch(ctx context.Context, req domain.WorkerRequest) error {
	return a.fetcher.Fetch(ctx, req)
}

func (a *App) timeout(override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return a.settings.Timeout
}

// outputDir returns dir as an absolute, existing directory. Empty selects the working directory.
func (a *App) outputDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "path", dir)
	}
	if err := os.MkdirAll(abs, domain.DirPerm); err != nil {
		return "", errors.Join(domain.ErrConfiguration,
			zerr.With(zerr.Wrap(err, "failed to create directory"), "path", abs))
	}
	return abs, nil
}

// prepareScripts returns the host directory mounted as the container scripts.
// An empty override materializes the embedded scripts into a temporary directory.
func (a *App) prepareScripts(override string) (string, func(), error) {
	if override != "" {
		dir, err := filepath.Abs(override)
		if err != nil {
			return "", nil, zerr.With(zerr.Wrap(err, "failed to resolve scripts directory"), "path", override)
		}
		if err := scripts.Validate(dir); err != nil {
			return "", nil, err
		}
		return dir, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "dockerbuild-scripts-*")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create scripts directory")
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to remove %s: %v", dir, err))
		}
	}
	if err := a.scripts.Materialize(dir); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}
