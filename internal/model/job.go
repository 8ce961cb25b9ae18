package model

import (
	"math"
	"time"
)

// Job represents a single submitted download and its observable state
type Job struct {
	ID        string
	URL       string
	Status    Status
	Progress  float64 // 0 to 100, meaningful while downloading
	Filename  string  // on-disk artifact name, set on complete
	Title     string  // sanitized title, used as the download-facing name
	SizeBytes int64   // artifact size in bytes, set on complete if known
	Message   string  // error message, set on error
	CreatedAt time.Time
}

// SizeMB returns the artifact size in megabytes rounded to one decimal
func (j *Job) SizeMB() float64 {
	return MBFromBytes(j.SizeBytes)
}

// MBFromBytes converts a byte count to megabytes rounded to one decimal
func MBFromBytes(n int64) float64 {
	return math.Round(float64(n)/(1024*1024)*10) / 10
}
