package model

// Status represents the lifecycle state of a download job
type Status string

const (
	// StatusPending means the job is registered but not yet started
	StatusPending Status = "pending"

	// StatusDownloading means the fetch is in progress
	StatusDownloading Status = "downloading"

	// StatusComplete means the artifact is ready for retrieval
	StatusComplete Status = "complete"

	// StatusError means the job failed with an error message
	StatusError Status = "error"

	// StatusNotFound is synthetic: reported for unknown job ids, never stored
	StatusNotFound Status = "not_found"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the job can no longer transition
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusError
}

// IsActive returns true if the job is still being worked on
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusDownloading
}
