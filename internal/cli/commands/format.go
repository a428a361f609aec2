package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlseg/pkg/format"
)

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Re-serialize SQL from its parsed form",
		Long: `Parse SQL and print it back from the statement tree.

Statement segments are re-serialized. Raw fragments are copied unchanged,
so text the parser could not convert is preserved.`,
		Example: `  sqlseg format query.sql
  sqlseg format --pretty --keyword-case lower query.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFormat,
	}

	cmd.Flags().Bool("pretty", false, "Put each clause on its own line")
	cmd.Flags().String("keyword-case", "", "Keyword case (upper|lower)")

	_ = cmd.RegisterFlagCompletionFunc("keyword-case", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(format.KeywordUpper), string(format.KeywordLower)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	results, err := parseInputs(cmd.Context(), cc, cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	opts := cc.Cfg.FormatOptions()
	for _, res := range results {
		for _, stmt := range res.Statements {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), format.Segmented(stmt, opts))
		}
	}
	return nil
}
