package fetch

// Package fetch is the boundary to the external media-fetch capability. The
// rest of the service only consumes size estimates, progress percentages and
// a completion result; protocol details stay behind this interface.

import "context"

// Result describes a finished download.
type Result struct {
	OutputPath string // path reported by the fetch backend, may be empty
	Title      string // human-readable title, unsanitized
	SizeBytes  int64  // artifact size, 0 if unknown
}

// ProgressFunc receives download progress as a percentage in the 0-100
// range. Callbacks may arrive out of order; callers are expected to clamp.
type ProgressFunc func(percent float64)

// Fetcher performs the actual network retrieval and format merging.
type Fetcher interface {
	// Probe estimates the resource size in bytes without downloading.
	// A zero result means the size is unknown. Probe is best-effort; a
	// failure must never block submission.
	Probe(ctx context.Context, url string) (int64, error)

	// Fetch downloads url into the artifact directory under the given job
	// id, reporting progress through fn.
	Fetch(ctx context.Context, url, id string, fn ProgressFunc) (*Result, error)
}

// Error is a typed fetch failure whose reason is safe to surface to the
// caller through the job's error message.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}
