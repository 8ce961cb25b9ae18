package download

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"yt-download-server/internal/fetch"
	"yt-download-server/internal/model"
	"yt-download-server/internal/platform"
	"yt-download-server/internal/store"
)

// Fallback title when the fetch backend reports none usable.
const defaultTitle = "video"

// Service executes submitted jobs. Each submission gets its own goroutine
// and runs independently of the request/response cycle; failures land on
// the job, never on the process.
type Service struct {
	registry    *store.Registry
	fetcher     fetch.Fetcher
	downloadDir string
}

// NewService creates an executor writing artifacts into downloadDir.
func NewService(registry *store.Registry, fetcher fetch.Fetcher, downloadDir string) *Service {
	return &Service{
		registry:    registry,
		fetcher:     fetcher,
		downloadDir: downloadDir,
	}
}

// Submit schedules the job for execution and returns immediately. A job is
// submitted exactly once; it is never re-executed.
func (s *Service) Submit(job model.Job) {
	go s.run(job)
}

func (s *Service) run(job model.Job) {
	s.registry.MarkDownloading(job.ID)

	result, err := s.fetcher.Fetch(context.Background(), job.URL, job.ID, func(pct float64) {
		s.registry.SetProgress(job.ID, pct)
	})
	if err != nil {
		log.Printf("job %s: %v", job.ID, err)
		s.registry.Fail(job.ID, err.Error())
		return
	}

	// A fetch can report success while the merged file never materialized.
	artifact, ok := s.locateArtifact(job.ID, result)
	if !ok {
		log.Printf("job %s: fetch succeeded but no artifact on disk", job.ID)
		s.registry.Fail(job.ID, "artifact missing")
		return
	}

	size := result.SizeBytes
	if info, err := os.Stat(artifact); err == nil {
		size = info.Size()
	}

	title := platform.SanitizeTitle(result.Title)
	if title == "" {
		title = defaultTitle
	}

	s.registry.Complete(job.ID, filepath.Base(artifact), title, size)
	log.Printf("job %s: complete (%s, %.1f MB)", job.ID, filepath.Base(artifact), model.MBFromBytes(size))
}

// locateArtifact prefers the path reported by the fetcher, falling back to
// scanning the artifact directory for {id}*.mp4.
func (s *Service) locateArtifact(id string, result *fetch.Result) (string, bool) {
	if result.OutputPath != "" {
		if info, err := os.Stat(result.OutputPath); err == nil && !info.IsDir() {
			return result.OutputPath, true
		}
	}
	return platform.FindArtifact(s.downloadDir, id)
}
