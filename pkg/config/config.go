// Package config loads the structurizer's tunables (pass limits,
// diagnostic verbosity, cache and audit backend selection) from a TOML
// file, falling back to built-in defaults for anything the file omits.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds everything the CLI, the HTTP API, and the TUI need to wire
// up a Run.
type Config struct {
	Structurize StructurizeConfig `toml:"structurize"`
	Cache       CacheConfig       `toml:"cache"`
	Audit       AuditConfig       `toml:"audit"`
}

// StructurizeConfig tunes the transform engine itself.
type StructurizeConfig struct {
	// MaxPasses is loaded from the file and defaults to 2. Run does not
	// read it; Run always performs exactly two structurization passes.
	MaxPasses int `toml:"max_passes"`
	// Verbose is loaded from the file. Neither Run nor any command reads
	// it.
	Verbose bool `toml:"verbose"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is one of "null", "file", "redis".
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// AuditConfig selects and configures the run-record store.
type AuditConfig struct {
	// Backend is one of "memory", "mongo".
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Structurize: StructurizeConfig{MaxPasses: 2},
		Cache:       CacheConfig{Backend: "null"},
		Audit:       AuditConfig{Backend: "memory", Database: "structurize", Collection: "runs"},
	}
}

// Load reads path and merges it over Default(); a missing file is not an
// error, it just leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
