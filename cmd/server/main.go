package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"yt-download-server/internal/config"
	"yt-download-server/internal/download"
	"yt-download-server/internal/fetch"
	"yt-download-server/internal/janitor"
	"yt-download-server/internal/platform"
	"yt-download-server/internal/server"
	"yt-download-server/internal/store"
)

func main() {
	// Optional: local development overrides from .env
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	settings := config.Load()

	if err := platform.CreateDirectoryIfNotExists(settings.DownloadDir); err != nil {
		log.Fatalf("Failed to create download directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Provision yt-dlp before accepting work
	if err := fetch.Install(ctx); err != nil {
		log.Fatalf("Failed to provision yt-dlp: %v", err)
	}

	registry := store.NewRegistry()
	fetcher := fetch.NewYTDLP(settings.DownloadDir)
	executor := download.NewService(registry, fetcher, settings.DownloadDir)

	jan := janitor.New(settings.DownloadDir, registry, settings.Retention, settings.SweepInterval)
	go jan.Run(ctx)

	srv := server.New(settings, registry, executor, fetcher)
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
