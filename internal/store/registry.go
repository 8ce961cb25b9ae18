package store

// Package store implements the in-memory job registry, the single source of
// truth for job state shared by the HTTP handlers, the executor goroutines
// and the janitor.

import (
	"sync"
	"time"

	"yt-download-server/internal/model"
)

// Registry tracks jobs by id. All methods are safe for concurrent use;
// readers always receive a fully-written copy, never a partially mutated
// job. State is ephemeral and rebuilt from nothing on restart.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]model.Job
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]model.Job)}
}

// Create registers a new pending job. Ids are generated per submission and
// never reused, so an existing entry is left untouched.
func (r *Registry) Create(id, url string) model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job, ok := r.jobs[id]; ok {
		return job
	}

	job := model.Job{
		ID:        id,
		URL:       url,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}
	r.jobs[id] = job
	return job
}

// Get returns a copy of the job, or false for an unknown id.
func (r *Registry) Get(id string) (model.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	return job, ok
}

// MarkDownloading moves a pending job into the downloading state. Terminal
// jobs are never touched.
func (r *Registry) MarkDownloading(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.Status.IsTerminal() {
		return
	}
	job.Status = model.StatusDownloading
	job.Progress = 0
	r.jobs[id] = job
}

// SetProgress records a progress callback for a downloading job. Values are
// clamped to 0-100 and never regress: a late lower callback loses. Updates
// for absent or terminal jobs are dropped.
func (r *Registry) SetProgress(id string, pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.Status != model.StatusDownloading || pct <= job.Progress {
		return
	}
	job.Progress = pct
	r.jobs[id] = job
}

// Complete marks the job finished and records the artifact details. This is
// the only transition that sets Filename and Title.
func (r *Registry) Complete(id, filename, title string, sizeBytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.Status.IsTerminal() {
		return
	}
	job.Status = model.StatusComplete
	job.Progress = 100
	job.Filename = filename
	job.Title = title
	job.SizeBytes = sizeBytes
	r.jobs[id] = job
}

// Fail marks the job failed with a caller-readable message.
func (r *Registry) Fail(id, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.Status.IsTerminal() {
		return
	}
	job.Status = model.StatusError
	job.Message = message
	r.jobs[id] = job
}

// Remove deletes the job entry. Removing an unknown id is a no-op, so the
// retrieval gate and the janitor can race without coordination.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

// Len returns the number of tracked jobs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
