package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteWordlist writes one ranked-wordlist line per argument to path and
// returns path.
func WriteWordlist(t testing.TB, path string, lines ...string) string {
	t.Helper()
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	WriteText(t, path, content)
	return path
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
