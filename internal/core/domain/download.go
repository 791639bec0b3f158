package domain

// DownloadTask is a single privilege-separated fetch of URL into Destination.
// Destination must not exist when the task starts.
type DownloadTask struct {
	URL         string
	Destination string
	UID         int
	GID         int
}

// WorkerRequest is passed by value to the download worker process.
type WorkerRequest struct {
	URL string
	// Dest is the file the worker creates. It must not exist.
	Dest string
	UID  int
	GID  int
	// SetGID permits the worker to change its group to GID.
	SetGID bool
	// SetUID permits the worker to change its user to UID.
	SetUID bool
}
