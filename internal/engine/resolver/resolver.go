// Package resolver selects a concrete release tag for a project from a tag pattern.
package resolver

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"github.com/bunsenlabs/dockerbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"pault.ag/go/debian/version"
)

// Resolver implements ports.TagResolver.
type Resolver struct {
	source ports.TagSource
	logger ports.Logger
}

// New creates a resolver over the given tag source.
func New(source ports.TagSource, logger ports.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

type candidate struct {
	tag     domain.Tag
	version version.Version
	parsed  bool
}

// Resolve returns the highest-versioned tag of project matching pattern.
// The pattern "?" selects the highest version; anything else is a shell glob.
func (r *Resolver) Resolve(ctx context.Context, project, pattern string) (domain.ResolvedTag, error) {
	tags, err := r.source.Tags(ctx, project)
	if err != nil {
		return domain.ResolvedTag{}, err
	}
	if len(tags) == 0 {
		return domain.ResolvedTag{}, zerr.With(zerr.Wrap(domain.ErrTagResolution, "project has no tags"), "project", project)
	}

	if pattern != domain.LatestTag {
		if _, err := path.Match(strings.ReplaceAll(pattern, "/", separatorStandIn), ""); err != nil {
			return domain.ResolvedTag{}, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrTagResolution, "malformed tag pattern"), "project", project),
				"pattern", pattern,
			)
		}
	}

	candidates := r.order(tags)

	if c, ok := selectTag(candidates, pattern); ok {
		r.logger.Debug(project + ":" + pattern + " resolved to " + c.tag.Name)
		return resolved(c), nil
	}

	return domain.ResolvedTag{}, zerr.With(
		zerr.With(zerr.Wrap(domain.ErrTagResolution, "no tag matches"), "project", project),
		"pattern", pattern,
	)
}

// order returns parseable tags in descending version order followed by
// unparseable tags in listing order.
func (r *Resolver) order(tags []domain.Tag) []candidate {
	parsed := make([]candidate, 0, len(tags))
	var unparsed []candidate

	for _, tag := range tags {
		v, err := ParseVersion(tag.Name)
		if err != nil {
			r.logger.Debug("skipping tag " + tag.Name + ": " + err.Error())
			unparsed = append(unparsed, candidate{tag: tag})
			continue
		}
		parsed = append(parsed, candidate{tag: tag, version: v, parsed: true})
	}

	slices.SortStableFunc(parsed, func(a, b candidate) int {
		return version.Compare(b.version, a.version)
	})

	return append(parsed, unparsed...)
}

// selectTag picks the first candidate satisfying pattern. The latest pattern
// only considers versioned candidates.
func selectTag(candidates []candidate, pattern string) (candidate, bool) {
	for _, c := range candidates {
		if pattern == domain.LatestTag {
			if c.parsed {
				return c, true
			}
			continue
		}
		if matchGlob(pattern, c.tag.Name) {
			return c, true
		}
	}
	return candidate{}, false
}

// separatorStandIn replaces '/' before matching so wildcards also span
// slashes in tag names such as "release/1.2".
const separatorStandIn = "\x00"

// matchGlob reports whether name matches the shell glob pattern.
// Unlike path.Match, '*' and '?' match '/'.
func matchGlob(pattern, name string) bool {
	ok, _ := path.Match(
		strings.ReplaceAll(pattern, "/", separatorStandIn),
		strings.ReplaceAll(name, "/", separatorStandIn),
	)
	return ok
}

// ParseVersion parses a tag name as a Debian version.
func ParseVersion(name string) (version.Version, error) {
	v, err := version.Parse(name)
	if err != nil {
		return version.Version{}, err
	}
	if v.Version == "" || v.Version[0] < '0' || v.Version[0] > '9' {
		return version.Version{}, errors.New("upstream version does not start with a digit")
	}
	return v, nil
}

func resolved(c candidate) domain.ResolvedTag {
	out := domain.ResolvedTag{
		Tag:             c.tag.Name,
		ArtifactURL:     c.tag.TarballURL,
		FullVersion:     c.tag.Name,
		UpstreamVersion: c.tag.Name,
	}
	if c.parsed {
		out.FullVersion = c.version.String()
		out.UpstreamVersion = c.version.Version
	}
	return out
}
