package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"My Video", "My Video"},
		{"  spaced   out  ", "spaced out"},
		{"Cats & Dogs: The Movie!", "Cats Dogs The Movie"},
		{"emoji 🎵 title", "emoji title"},
		{"slash/back\\slash", "slashbackslash"},
		{"under_score-dash", "under_score-dash"},
		{"Видео тест", "Видео тест"},
		{"日本語のタイトル 123", "日本語のタイトル 123"},
		{"Müller & Söhne", "Müller Söhne"},
		{"", ""},
		{"!!!", ""},
	}

	for _, test := range tests {
		result := SanitizeTitle(test.title)
		if result != test.expected {
			t.Errorf("SanitizeTitle(%q) = %q, expected %q", test.title, result, test.expected)
		}
	}
}

func TestSanitizeTitle_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	result := SanitizeTitle(long)
	if len(result) != MaxTitleLength {
		t.Errorf("SanitizeTitle() length = %d, expected %d", len(result), MaxTitleLength)
	}

	// The cap counts runes, never splitting a multi-byte character
	longCyrillic := strings.Repeat("я", 300)
	result = SanitizeTitle(longCyrillic)
	if utf8.RuneCountInString(result) != MaxTitleLength {
		t.Errorf("SanitizeTitle() rune count = %d, expected %d", utf8.RuneCountInString(result), MaxTitleLength)
	}
	if !utf8.ValidString(result) {
		t.Error("SanitizeTitle() produced an invalid UTF-8 string")
	}
}

func TestFindArtifact(t *testing.T) {
	tempDir := t.TempDir()

	// No artifact yet
	if _, ok := FindArtifact(tempDir, "d1"); ok {
		t.Fatal("FindArtifact() found an artifact in an empty directory")
	}

	path := filepath.Join(tempDir, "d1.mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}
	// Unrelated files must not match
	if err := os.WriteFile(filepath.Join(tempDir, "other.mp4"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	found, ok := FindArtifact(tempDir, "d1")
	if !ok {
		t.Fatal("FindArtifact() did not find the artifact")
	}
	if found != path {
		t.Errorf("FindArtifact() = %s, expected %s", found, path)
	}

	if _, ok := FindArtifact(tempDir, "d2"); ok {
		t.Error("FindArtifact() matched a foreign id")
	}
}

func TestRemoveIfExists(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "gone.mp4")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("RemoveIfExists() failed: %v", err)
	}

	// Second delete is a no-op
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("RemoveIfExists() on missing file failed: %v", err)
	}
}
