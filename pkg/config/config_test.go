package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Structurize.MaxPasses != 2 {
		t.Fatalf("MaxPasses = %d, want default 2", cfg.Structurize.MaxPasses)
	}
	if cfg.Cache.Backend != "null" {
		t.Fatalf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "null")
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[cache]\nbackend = \"file\"\ndir = \"/tmp/structurize-cache\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/structurize-cache" {
		t.Fatalf("Cache config not applied: %+v", cfg.Cache)
	}
	if cfg.Structurize.MaxPasses != 2 {
		t.Fatalf("MaxPasses = %d, want untouched default 2", cfg.Structurize.MaxPasses)
	}
}
