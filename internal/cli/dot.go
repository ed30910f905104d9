package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardenhollis/structurize/pkg/emit"
	"github.com/ardenhollis/structurize/pkg/fixture"
	"github.com/ardenhollis/structurize/pkg/structurize"
)

// dotCommand structurizes a fixture and writes its Graphviz DOT (or SVG)
// rendering to stdout or a file.
func (c *CLI) dotCommand() *cobra.Command {
	var output string
	var svg bool

	cmd := &cobra.Command{
		Use:   "dot <fixture.json>",
		Short: "Render a structurized CFG as Graphviz DOT or SVG",
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
			if _, err := structurize.Run(pool, nil, nil); err != nil {
				return fmt.Errorf("structurize: %w", err)
			}

			var data []byte
			if svg {
				data, err = emit.RenderSVG(pool)
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			} else {
				data = []byte(emit.ToDOT(pool))
			}

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&svg, "svg", false, "render to SVG instead of DOT")
	return cmd
}
