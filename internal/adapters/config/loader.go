// Package config loads the dockerbuild option file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvTag marks a two-element sequence [name, default] that resolves to
// the value of $BL_<name> when set and to default otherwise.
const EnvTag = "!Env"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger    ports.Logger
	fs        FileSystem
	validate  *validator.Validate
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader reading from the host filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Loader{
		Logger:    logger,
		fs:        fsys,
		validate:  validate,
		lookupEnv: os.LookupEnv,
	}
}

// Load reads the option file and applies it over the built-in settings.
// An empty path selects dockerbuild.yaml in cwd, which may be absent.
func (l *Loader) Load(cwd, path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			l.Logger.Debug("no option file at " + path + ", using defaults")
			return settings, nil
		}
		return domain.Settings{}, errors.Join(
			domain.ErrConfiguration,
			zerr.With(zerr.Wrap(err, "failed to read option file"), "path", path),
		)
	}

	opts, err := l.parse(data)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}

	if err := l.validate.Struct(opts); err != nil {
		return domain.Settings{}, zerr.With(validationError(err), "path", path)
	}

	l.Logger.Debug("loaded option file " + path)
	return apply(settings, opts, filepath.Dir(path)), nil
}

func (l *Loader) parse(data []byte) (Options, error) {
	var opts Options

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return opts, errors.Join(domain.ErrConfiguration, zerr.Wrap(err, "failed to parse option file"))
	}
	if root.Kind == 0 {
		return opts, nil
	}

	if err := l.resolveEnv(&root); err != nil {
		return opts, err
	}

	if err := root.Decode(&opts); err != nil {
		return opts, errors.Join(domain.ErrConfiguration, zerr.Wrap(err, "invalid option file"))
	}
	return opts, nil
}

// resolveEnv replaces every !Env node with a plain scalar in place.
func (l *Loader) resolveEnv(node *yaml.Node) error {
	if node.Tag == EnvTag {
		if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
			return zerr.With(
				zerr.Wrap(domain.ErrConfiguration, "!Env expects [name, default]"),
				"line", node.Line,
			)
		}
		name, fallback := node.Content[0].Value, node.Content[1]
		value := fallback.Value
		if v, ok := l.lookupEnv(domain.EnvPrefix + "_" + name); ok {
			value = v
		}
		*node = yaml.Node{Kind: yaml.ScalarNode, Value: value, Line: node.Line, Column: node.Column}
		return nil
	}

	for _, child := range node.Content {
		if err := l.resolveEnv(child); err != nil {
			return err
		}
	}
	return nil
}

func apply(settings domain.Settings, opts Options, baseDir string) domain.Settings {
	if opts.UnprivUser != "" {
		settings.UnprivUser = opts.UnprivUser
	}
	if opts.UnprivGroup != "" {
		settings.UnprivGroup = opts.UnprivGroup
	}
	if opts.Timeout > 0 {
		settings.Timeout = time.Duration(opts.Timeout) * time.Second
	}
	if opts.Architecture != "" {
		settings.Architecture = domain.Architecture(opts.Architecture)
	}
	if opts.LogFormat != "" {
		settings.LogFormat = domain.LogFormat(opts.LogFormat)
	}
	if opts.GitHubAPIURL != "" {
		settings.GitHubAPIURL = opts.GitHubAPIURL
	}
	if opts.ScriptsDir != "" {
		settings.ScriptsDir = opts.ScriptsDir
		if !filepath.IsAbs(settings.ScriptsDir) {
			settings.ScriptsDir = filepath.Join(baseDir, settings.ScriptsDir)
		}
	}
	return settings
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Join(domain.ErrConfiguration, err)
	}
	first := verrs[0]
	wrapped := zerr.With(zerr.Wrap(domain.ErrConfiguration, "invalid option value"), "option", first.Field())
	wrapped = zerr.With(wrapped, "rule", first.Tag())
	return zerr.With(wrapped, "value", first.Value())
}
