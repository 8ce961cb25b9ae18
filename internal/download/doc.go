package download

// Package download implements the job executor built on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp behind the fetch adapter). It runs one
// background goroutine per submitted job, propagates progress into the
// registry and drives jobs to their terminal state.
