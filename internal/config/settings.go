package config

// Package config reads service settings from the environment with defaults
// sized for a constrained single-node deployment. A .env file, if present,
// is loaded by main before this package is consulted.

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variable names
const (
	KeyPort          = "PORT"
	KeyDownloadDir   = "DOWNLOAD_DIR"
	KeySizeLimitMB   = "SIZE_LIMIT_MB"
	KeyRetentionMin  = "RETENTION_MINUTES"
	KeySweepMin      = "SWEEP_INTERVAL_MINUTES"
	KeyGraceDelaySec = "GRACE_DELAY_SECONDS"
)

// Default values
const (
	DefaultPort          = 5000
	DefaultSizeLimitMB   = 500
	DefaultRetention     = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
	DefaultGraceDelay    = 5 * time.Second
)

// Settings holds the runtime configuration of the service.
type Settings struct {
	Port          int
	DownloadDir   string        // artifact store directory
	SizeLimitMB   int64         // probe rejection threshold
	Retention     time.Duration // max artifact age before the janitor deletes it
	SweepInterval time.Duration // janitor cadence
	GraceDelay    time.Duration // pause between serving an artifact and reclaiming it
}

// Load builds Settings from the environment, falling back to defaults for
// anything unset or unparsable.
func Load() Settings {
	return Settings{
		Port:          envInt(KeyPort, DefaultPort),
		DownloadDir:   envString(KeyDownloadDir, defaultDownloadDir()),
		SizeLimitMB:   int64(envInt(KeySizeLimitMB, DefaultSizeLimitMB)),
		Retention:     envMinutes(KeyRetentionMin, DefaultRetention),
		SweepInterval: envMinutes(KeySweepMin, DefaultSweepInterval),
		GraceDelay:    envSeconds(KeyGraceDelaySec, DefaultGraceDelay),
	}
}

// defaultDownloadDir keeps artifacts under the system temp dir so a
// platform-managed filesystem reclaims them on reboot.
func defaultDownloadDir() string {
	return filepath.Join(os.TempDir(), "yt_downloads")
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envMinutes(key string, fallback time.Duration) time.Duration {
	if n := envInt(key, 0); n > 0 {
		return time.Duration(n) * time.Minute
	}
	return fallback
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	if n := envInt(key, 0); n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
