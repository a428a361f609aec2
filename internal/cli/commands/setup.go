package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/internal/config"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Parser   *parser.Parser
}

// NewCommandContext builds a CommandContext from the config and logger the
// root command stored in the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Parser:   parser.New(parser.Config{Logger: logger}),
	}
}
