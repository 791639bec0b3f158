package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned when a required setting or credential is missing or invalid.
	ErrConfiguration = zerr.New("configuration error")

	// ErrCapabilityUnsupported is returned when the host exposes no process capability information.
	ErrCapabilityUnsupported = zerr.New("process capabilities are not supported on this host")

	// ErrProcessNotFound is returned when the status record of a process is missing.
	ErrProcessNotFound = zerr.New("process not found")

	// ErrContainerRuntime is returned when a container exits non-zero, times out, or the runtime reports an error.
	ErrContainerRuntime = zerr.New("container runtime error")

	// ErrDownload is returned when a download precondition fails or the worker does not produce the destination.
	ErrDownload = zerr.New("download failed")

	// ErrArchiveSecurity is returned when an archive member would escape the extraction directory.
	ErrArchiveSecurity = zerr.New("archive failed safety check")

	// ErrArchiveExtract is returned when a checked archive cannot be read or written to disk.
	ErrArchiveExtract = zerr.New("failed to extract archive")

	// ErrTagResolution is returned when a project has no tags or no tag matches the requested pattern.
	ErrTagResolution = zerr.New("tag resolution failed")

	// ErrTagSource is returned when the remote tag listing cannot be fetched.
	ErrTagSource = zerr.New("failed to list tags")

	// ErrManifest is returned when the package changelog or control file cannot be read.
	ErrManifest = zerr.New("failed to read package manifest")

	// ErrInvalidJobSpec is returned when a batch entry cannot be parsed.
	ErrInvalidJobSpec = zerr.New("invalid batch entry, expected project[:tag[:arch,...]]")

	// ErrBatchFailed is returned when one or more batch units failed.
	ErrBatchFailed = zerr.New("batch failed")
)
