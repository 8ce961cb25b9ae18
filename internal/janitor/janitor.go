package janitor

// Package janitor reclaims stale artifacts left behind by crashed or
// abandoned jobs, independent of the retrieval gate's own cleanup.

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"yt-download-server/internal/platform"
	"yt-download-server/internal/store"
)

// Janitor periodically deletes artifacts whose last-modified age exceeds the
// retention window, together with their registry entries. Downloads still in
// progress keep a fresh mtime and are never swept.
type Janitor struct {
	dir       string
	registry  *store.Registry
	retention time.Duration
	interval  time.Duration
}

// New creates a janitor for the given artifact directory.
func New(dir string, registry *store.Registry, retention, interval time.Duration) *Janitor {
	return &Janitor{
		dir:       dir,
		registry:  registry,
		retention: retention,
		interval:  interval,
	}
}

// Run sweeps on a fixed cadence until ctx is cancelled. Deletion latency is
// bounded by the sweep interval, not instantaneous.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Sweep(); err != nil {
				log.Printf("janitor: sweep failed: %v", err)
			}
		}
	}
}

// Sweep deletes every artifact older than the retention window. A file
// vanishing between discovery and deletion is not an error; the retrieval
// gate may have reclaimed it first.
func (j *Janitor) Sweep() error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-j.retention)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := platform.RemoveIfExists(path); err != nil {
			log.Printf("janitor: remove %s: %v", entry.Name(), err)
			continue
		}
		j.registry.Remove(jobID(entry.Name()))
		log.Printf("janitor: reclaimed %s", entry.Name())
	}
	return nil
}

// jobID recovers the job id from an artifact name. Artifacts are named
// {id}.mp4 but yt-dlp may decorate the name (d1.f137.mp4), so everything
// before the first dot is the id. Removing an id that was never registered
// is harmless.
func jobID(filename string) string {
	if i := strings.Index(filename, "."); i >= 0 {
		return filename[:i]
	}
	return filename
}
