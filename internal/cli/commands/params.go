package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
)

// NewParamsCommand creates the params command.
func NewParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params [files...]",
		Short: "List parameter placeholders and their positions",
		Long: `List every parameter placeholder found in statement segments.

Positions are zero-based. An anonymous "?" takes the next position and a
numbered "?N" takes position N-1. Anonymous placeholders inside raw
fragments also consume a position.`,
		Example: `  sqlseg params query.sql
  sqlseg params -o json query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			results, err := parseInputs(cmd.Context(), cc, cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return output.RenderParams(cc.Renderer, output.CollectParams(results))
		},
	}
}
