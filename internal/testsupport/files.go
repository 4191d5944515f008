package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates path with size filler bytes (at least one), making
// parent directories as needed. Content is irrelevant to callers that stub
// the decoder.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	WriteText(t, path, strings.Repeat("B", int(max(size, 1))))
}

// WriteSpeakerClips creates placeholder clips under audioDir/speaker and
// returns their paths in the order given.
func WriteSpeakerClips(t testing.TB, audioDir, speaker string, names ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(audioDir, speaker, name)
		WriteFile(t, path, 64)
		paths = append(paths, path)
	}
	return paths
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
