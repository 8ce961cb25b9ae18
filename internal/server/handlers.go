package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"yt-download-server/internal/model"
	"yt-download-server/internal/platform"
)

// Pre-flight probes ride on the request; a slow probe should fail open, not
// hold the submission hostage.
const probeTimeout = 60 * time.Second

type downloadRequest struct {
	URL string `json:"url"`
}

type downloadResponse struct {
	DownloadID string `json:"download_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type sizeLimitResponse struct {
	Error   string  `json:"error"`
	SizeMB  float64 `json:"size_mb"`
	LimitMB int64   `json:"limit_mb"`
}

type statusResponse struct {
	Status   string   `json:"status"`
	Progress *float64 `json:"progress,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Title    string   `json:"title,omitempty"`
	SizeMB   *float64 `json:"size_mb,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// handleDownload validates the URL, runs a best-effort size check and
// submits a background job. The response returns before any download work
// happens.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var body downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	url := strings.TrimSpace(body.URL)
	if url == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No URL provided"})
		return
	}
	if !isYouTubeURL(url) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid YouTube URL"})
		return
	}

	// Pre-flight size check. Probe failures never block submission.
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()
	if size, err := s.fetcher.Probe(ctx, url); err != nil {
		log.Printf("size check failed: %v", err)
	} else if sizeMB := model.MBFromBytes(size); sizeMB > float64(s.settings.SizeLimitMB) {
		writeJSON(w, http.StatusForbidden, sizeLimitResponse{
			Error:   "size_limit",
			SizeMB:  sizeMB,
			LimitMB: s.settings.SizeLimitMB,
		})
		return
	}

	job := s.registry.Create(uuid.NewString(), url)
	s.executor.Submit(job)

	writeJSON(w, http.StatusOK, downloadResponse{DownloadID: job.ID})
}

// handleStatus reports the job's current state. Unknown ids get a synthetic
// not_found status, not an error.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusOK, statusResponse{Status: model.StatusNotFound.String()})
		return
	}
	writeJSON(w, http.StatusOK, statusFor(job))
}

func statusFor(job model.Job) statusResponse {
	resp := statusResponse{Status: job.Status.String()}
	switch job.Status {
	case model.StatusDownloading:
		progress := job.Progress
		resp.Progress = &progress
	case model.StatusComplete:
		resp.Filename = job.Filename
		resp.Title = job.Title
		sizeMB := job.SizeMB()
		resp.SizeMB = &sizeMB
	case model.StatusError:
		resp.Message = job.Message
	}
	return resp
}

// handleGet is the retrieval gate: it streams a completed artifact and then
// schedules reclamation after the grace delay. Serve-once is best-effort; a
// second request inside the grace window may still succeed.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	job, ok := s.registry.Get(id)
	if !ok || job.Status != model.StatusComplete {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not ready"})
		return
	}

	path := filepath.Join(s.settings.DownloadDir, job.Filename)
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "File missing"})
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", job.Title+platform.ArtifactExtension))
	http.ServeFile(w, r, path)

	// Reclaim after the transfer has had time to drain. The janitor may
	// race this delete; both sides tolerate a missing file.
	go func() {
		time.Sleep(s.settings.GraceDelay)
		if err := platform.RemoveIfExists(path); err != nil {
			log.Printf("cleanup %s: %v", job.Filename, err)
		}
		s.registry.Remove(id)
	}()
}

func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
