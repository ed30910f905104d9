package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCachePathCommandPrintsCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := testCLI()
	cmd := c.cachePathCommand()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() error: %v", err)
	}
	os.Stdout = w
	execErr := cmd.RunE(cmd, nil)
	w.Close()
	os.Stdout = old
	if execErr != nil {
		t.Fatalf("RunE() error: %v", execErr)
	}

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	if n == 0 {
		t.Fatal("expected cache path output, got none")
	}
}

func TestCacheClearCommandHandlesMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "does-not-exist"))
	c := testCLI()
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE() error: %v", err)
	}
}

func TestCacheClearCommandRemovesEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "structurize")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	t.Setenv("XDG_CACHE_HOME", filepath.Dir(dir))

	c := testCLI()
	cmd := c.cacheClearCommand()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("cache dir has %d entries after clear, want 0", len(entries))
	}
}
