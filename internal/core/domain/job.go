package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// LatestTag is the tag pattern selecting the highest version.
const LatestTag = "?"

// Tag is a named tag of a remote project.
type Tag struct {
	Name       string
	TarballURL string
}

// ResolvedTag is the result of resolving a tag pattern.
type ResolvedTag struct {
	Tag         string
	ArtifactURL string
	// FullVersion is the tag parsed as a Debian version.
	FullVersion string
	// UpstreamVersion is the upstream part of FullVersion.
	UpstreamVersion string
}

// BuildJob is one project entry of a batch.
type BuildJob struct {
	Project       string
	TagPattern    string
	Architectures []Architecture

	Resolved ResolvedTag
	// Tarball is the local path of the downloaded artifact.
	Tarball string
}

// Name returns the last path segment of the project.
func (j *BuildJob) Name() string {
	return path.Base(j.Project)
}

// TarballName returns the file name used for the job's downloaded artifact.
func (j *BuildJob) TarballName() string {
	return j.Name() + "_" + j.Resolved.UpstreamVersion + ".tar.gz"
}

// ParseJobSpec parses a batch entry of the form project[:tag[:arch1,arch2,...]].
// A missing tag selects the latest version and missing architectures select amd64.
func ParseJobSpec(spec string) (BuildJob, error) {
	parts := strings.SplitN(spec, ":", 3)
	job := BuildJob{
		Project:       parts[0],
		TagPattern:    LatestTag,
		Architectures: []Architecture{DefaultArchitecture},
	}

	if job.Project == "" {
		return BuildJob{}, zerr.With(zerr.Wrap(ErrInvalidJobSpec, "empty project"), "entry", spec)
	}

	if len(parts) > 1 && parts[1] != "" {
		job.TagPattern = parts[1]
	}

	if len(parts) > 2 && parts[2] != "" {
		job.Architectures = job.Architectures[:0]
		for _, name := range strings.Split(parts[2], ",") {
			arch, err := ParseArchitecture(strings.TrimSpace(name))
			if err != nil {
				return BuildJob{}, zerr.With(err, "entry", spec)
			}
			job.Architectures = append(job.Architectures, arch)
		}
	}

	return job, nil
}
