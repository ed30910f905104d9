package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardenhollis/structurize/internal/tui"
	"github.com/ardenhollis/structurize/pkg/fixture"
)

// tuiCommand launches the interactive pass-by-pass viewer over a fixture.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui <fixture.json>",
		Short: "Step through structurization passes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixture.LoadJSON(args[0])
			if err != nil {
				return fmt.Errorf("load fixture: %w", err)
			}
			pool, err := fixture.Build(f)
			if err != nil {
				return fmt.Errorf("build pool: %w", err)
			}
			return tui.Run(pool)
		},
	}
}
