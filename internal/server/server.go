package server

// Package server exposes the HTTP surface: submission, status polling and
// the one-shot retrieval gate.

import (
	"fmt"
	"log"
	"net/http"

	"yt-download-server/internal/config"
	"yt-download-server/internal/download"
	"yt-download-server/internal/fetch"
	"yt-download-server/internal/store"
)

// Server wires the registry, executor and fetcher behind the JSON API.
type Server struct {
	addr     string
	settings config.Settings
	registry *store.Registry
	executor *download.Service
	fetcher  fetch.Fetcher
}

// New creates a server. The fetcher is only used for pre-flight size
// probes; downloads run through the executor.
func New(settings config.Settings, registry *store.Registry, executor *download.Service, fetcher fetch.Fetcher) *Server {
	return &Server{
		addr:     fmt.Sprintf(":%d", settings.Port),
		settings: settings,
		registry: registry,
		executor: executor,
		fetcher:  fetcher,
	}
}

// Handler builds the route table. Split out from Start so tests can drive
// the mux without a listening socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("GET /status/{id}", s.handleStatus)
	mux.HandleFunc("GET /get/{id}", s.handleGet)

	return mux
}

// Start blocks serving the API.
func (s *Server) Start() error {
	log.Printf("Server starting at http://localhost%s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}
