package platform

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// ArtifactExtension is the container every artifact is merged into.
const ArtifactExtension = ".mp4"

// MaxTitleLength caps sanitized titles so attachment names stay portable.
const MaxTitleLength = 100

// Letters and digits in any script survive; Cyrillic or CJK titles must not
// collapse to the generic fallback name.
var (
	titleStripPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CreateDirectoryIfNotExists creates a directory if it doesn't exist
func CreateDirectoryIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, DefaultDirPermissions)
	}
	return nil
}

// SanitizeTitle reduces a video title to a safe download filename: strips
// everything outside word characters, spaces and hyphens, collapses
// whitespace runs, and caps the length.
func SanitizeTitle(title string) string {
	title = titleStripPattern.ReplaceAllString(title, "")
	title = whitespacePattern.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	if runes := []rune(title); len(runes) > MaxTitleLength {
		title = strings.TrimSpace(string(runes[:MaxTitleLength]))
	}
	return title
}

// FindArtifact locates the merged artifact for a job id, matching
// {id}*.mp4 to tolerate yt-dlp decorating the name during merging.
func FindArtifact(dir, id string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(dir, id+"*"+ArtifactExtension))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

// RemoveIfExists deletes a file, treating an already-missing file as
// success. The retrieval gate and the janitor may both target the same
// artifact.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
