package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ardenhollis/structurize/pkg/cache"
	"github.com/ardenhollis/structurize/pkg/cfg"
	"github.com/ardenhollis/structurize/pkg/emit"
	"github.com/ardenhollis/structurize/pkg/fixture"
	"github.com/ardenhollis/structurize/pkg/structurize"
)

type runOpts struct {
	input      string
	noCache    bool
	dumpPasses string
}

// runCommand structurizes a fixture file and reports the resulting stats.
func (c *CLI) runCommand() *cobra.Command {
	opts := &runOpts{}
	cmd := &cobra.Command{
		Use:   "run <fixture.json>",
		Short: "Structurize a CFG fixture and print the resulting stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			return c.runFixture(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().StringVar(&opts.dumpPasses, "dump-passes", "", "write one DOT file per pass boundary to this directory")
	return cmd
}

func (c *CLI) runFixture(ctx context.Context, opts *runOpts) error {
	raw, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	f, err := fixture.LoadJSON(opts.input)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}
	pool, err := fixture.Build(f)
	if err != nil {
		return fmt.Errorf("build pool: %w", err)
	}

	if opts.dumpPasses != "" {
		return c.runWithPassDumps(pool, opts.dumpPasses)
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	key := cache.ResultKey(cache.Hash(raw))
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		var stats structurize.Stats
		if err := json.Unmarshal(data, &stats); err == nil {
			c.Logger.Infof("cache hit for %s", opts.input)
			c.logStats(stats)
			return nil
		}
	}

	diagnostics := &structurize.CollectingDiagnostics{}
	result, err := structurize.Run(pool, nil, diagnostics)
	if err != nil {
		return fmt.Errorf("structurize: %w", err)
	}

	for _, msg := range result.Diagnostics {
		c.Logger.Warn(msg)
	}
	c.logStats(result.Stats)

	if encoded, err := json.Marshal(result.Stats); err == nil {
		if err := store.Set(ctx, key, encoded, 24*time.Hour); err != nil {
			c.Logger.Debugf("cache store failed: %v", err)
		}
	}
	return nil
}

// runWithPassDumps drives pool through a Stepper instead of Run, writing one
// DOT file per pass boundary to dir. It bypasses the result cache: a caller
// asking to see every intermediate pass wants the full run traced, not a
// cached stats blob.
func (c *CLI) runWithPassDumps(pool *cfg.Pool, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dump-passes dir: %w", err)
	}

	diagnostics := &structurize.CollectingDiagnostics{}
	stepper := structurize.NewStepper(pool, diagnostics)

	for i := 0; !stepper.Done(); i++ {
		name, err, _ := stepper.Next()
		path := filepath.Join(dir, fmt.Sprintf("%02d_%s.dot", i, name))
		if werr := os.WriteFile(path, []byte(emit.ToDOT(pool)), 0o644); werr != nil {
			return fmt.Errorf("write pass dump %s: %w", path, werr)
		}
		c.Logger.Debugf("wrote pass dump %s", path)
		if err != nil {
			return fmt.Errorf("structurize: %w", err)
		}
	}

	result := stepper.Result()
	for _, msg := range result.Diagnostics {
		c.Logger.Warn(msg)
	}
	c.logStats(result.Stats)
	return nil
}

func (c *CLI) logStats(stats structurize.Stats) {
	c.Logger.Infof("ladders=%d helpers=%d phi_insertions=%d",
		stats.LaddersCreated, stats.HelperBlocksCreated, stats.PhiInsertions)
}
