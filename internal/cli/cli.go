// Package cli implements the structurize command-line interface: run,
// dot, cache, serve, and tui subcommands built on cobra, sharing the
// charmbracelet/log logger held in the CLI struct.
package cli

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ardenhollis/structurize/pkg/buildinfo"
	"github.com/ardenhollis/structurize/pkg/cache"
)

const appName = "structurize"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI with a logger writing to w at level.
func New(w *os.File, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// RootCommand builds the root cobra command with every subcommand attached.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "structurize",
		Short:        "Structurize turns a reducible control-flow graph into structured control flow",
		Long:         "Structurize discovers loop and selection constructs in a control-flow graph and rewrites it to satisfy structured-CFG constraints: unique dominated merges, unique continue targets, and forward-only construct edges.",
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())

	return root
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the structurizer's file cache directory, following XDG.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
