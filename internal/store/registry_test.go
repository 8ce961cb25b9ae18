package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-download-server/internal/model"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	r := NewRegistry()

	job := r.Create("d1", "https://youtu.be/abc123")
	assert.Equal(t, "d1", job.ID)
	assert.Equal(t, model.StatusPending, job.Status)
	assert.False(t, job.CreatedAt.IsZero())

	got, ok := r.Get("d1")
	require.True(t, ok)
	assert.Equal(t, job, got)

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestRegistry_CreateDoesNotOverwrite(t *testing.T) {
	r := NewRegistry()

	r.Create("d1", "https://youtu.be/abc123")
	r.MarkDownloading("d1")
	again := r.Create("d1", "https://youtu.be/other")

	assert.Equal(t, model.StatusDownloading, again.Status)
	assert.Equal(t, "https://youtu.be/abc123", again.URL)
}

func TestRegistry_TransitionOrdering(t *testing.T) {
	r := NewRegistry()
	r.Create("d1", "u")

	r.MarkDownloading("d1")
	job, _ := r.Get("d1")
	assert.Equal(t, model.StatusDownloading, job.Status)

	r.Complete("d1", "d1.mp4", "My Video", 1024)
	job, _ = r.Get("d1")
	require.Equal(t, model.StatusComplete, job.Status)
	assert.Equal(t, "d1.mp4", job.Filename)
	assert.Equal(t, "My Video", job.Title)
	assert.EqualValues(t, 1024, job.SizeBytes)
	assert.Equal(t, float64(100), job.Progress)

	// Terminal jobs never transition again.
	r.Fail("d1", "late failure")
	r.MarkDownloading("d1")
	job, _ = r.Get("d1")
	assert.Equal(t, model.StatusComplete, job.Status)
	assert.Empty(t, job.Message)
}

func TestRegistry_Fail(t *testing.T) {
	r := NewRegistry()
	r.Create("d1", "u")
	r.MarkDownloading("d1")

	r.Fail("d1", "download failed: network unreachable")

	job, _ := r.Get("d1")
	require.Equal(t, model.StatusError, job.Status)
	assert.Equal(t, "download failed: network unreachable", job.Message)
	assert.Empty(t, job.Filename, "filename must only be set on complete")

	// A completion arriving after the failure is dropped.
	r.Complete("d1", "d1.mp4", "t", 1)
	job, _ = r.Get("d1")
	assert.Equal(t, model.StatusError, job.Status)
}

func TestRegistry_SetProgress(t *testing.T) {
	r := NewRegistry()
	r.Create("d1", "u")

	// Progress before the downloading transition is dropped.
	r.SetProgress("d1", 10)
	job, _ := r.Get("d1")
	assert.Equal(t, float64(0), job.Progress)

	r.MarkDownloading("d1")
	r.SetProgress("d1", 42.5)
	job, _ = r.Get("d1")
	assert.Equal(t, 42.5, job.Progress)

	// Out-of-order callbacks never regress the recorded value.
	r.SetProgress("d1", 30)
	job, _ = r.Get("d1")
	assert.Equal(t, 42.5, job.Progress)

	// Values are clamped to the 0-100 range.
	r.SetProgress("d1", 250)
	job, _ = r.Get("d1")
	assert.Equal(t, float64(100), job.Progress)

	// Updates after a terminal transition are ignored.
	r.Fail("d1", "boom")
	r.SetProgress("d1", 99)
	job, _ = r.Get("d1")
	assert.Equal(t, float64(100), job.Progress)

	// Unknown ids are a no-op, not a panic.
	r.SetProgress("nope", 50)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	r.Create("d1", "u")

	r.Remove("d1")
	_, ok := r.Get("d1")
	assert.False(t, ok)

	// Idempotent: the gate and the janitor may both remove the same id.
	r.Remove("d1")
	assert.Equal(t, 0, r.Len())
}

// Concurrent submit+poll sequences with distinct ids must only ever observe
// their own job's transitions.
func TestRegistry_ConcurrentJobsAreIsolated(t *testing.T) {
	r := NewRegistry()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("job-%d", i)
			url := fmt.Sprintf("https://youtu.be/v%d", i)

			r.Create(id, url)
			r.MarkDownloading(id)
			for pct := 0; pct <= 100; pct += 5 {
				r.SetProgress(id, float64(pct))
				job, ok := r.Get(id)
				if !ok || job.ID != id || job.URL != url {
					t.Errorf("job %s: observed foreign state %+v", id, job)
					return
				}
			}
			r.Complete(id, id+".mp4", fmt.Sprintf("Video %d", i), int64(i))
		}(i)
	}
	wg.Wait()

	require.Equal(t, n, r.Len())
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("job-%d", i)
		job, ok := r.Get(id)
		require.True(t, ok)
		assert.Equal(t, model.StatusComplete, job.Status)
		assert.Equal(t, id+".mp4", job.Filename)
		assert.EqualValues(t, i, job.SizeBytes)
	}
}
