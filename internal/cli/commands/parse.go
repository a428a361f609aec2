package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/internal/config"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse SQL into statement segments",
		Long: `Parse SQL files into typed statement trees.

Each input becomes a segmented statement. Text the grammar accepts is a
single statement segment. Otherwise every SELECT that can be isolated is
parsed on its own and the surrounding text is kept as raw fragments.
Parameter placeholders are assigned positions in lexical order.

With no files, or with "-", SQL is read from standard input.`,
		Example: `  sqlseg parse query.sql
  sqlseg parse -o json views/*.sql
  echo "SELECT * FROM t WHERE id = ?" | sqlseg parse -o table`,
		RunE: runParse,
	}

	cmd.Flags().Int("concurrency", config.DefaultConcurrency, "Number of files parsed at once")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	results, err := parseInputs(cmd.Context(), cc, cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	return output.RenderParse(cc.Renderer, results)
}
