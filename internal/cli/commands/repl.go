package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/pkg/format"
)

const (
	continuationPrompt = "    ...> "
	replSource         = "<repl>"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse SQL interactively",
		Long: `Start an interactive shell that parses each statement as it is entered.

Statements end with a semicolon and may span several lines. Lines starting
with a dot are shell commands; type .help to list them.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}

	cmd.Flags().String("prompt", "", "Prompt shown for new statements")
	cmd.Flags().String("history-file", "", "History file (default: ~/.sqlseg_history)")

	return cmd
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)
	session := newREPLSession(cc, cmd.OutOrStdout(), cmd.ErrOrStderr())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          session.prompt(),
		HistoryFile:     cc.Cfg.REPL.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Logger.Debug("repl started", "history", cc.Cfg.REPL.HistoryFile)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sqlseg interactive parser")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(session.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if quit := session.handleLine(line); quit {
			break
		}
		rl.SetPrompt(session.prompt())
	}

	return nil
}

// replSession holds the state of one interactive session apart from the
// terminal, so lines can be fed to it directly.
type replSession struct {
	cc     *CommandContext
	out    io.Writer
	errOut io.Writer

	// formatMode prints statements re-serialized instead of as segments.
	formatMode bool
	buf        strings.Builder
}

func newREPLSession(cc *CommandContext, out, errOut io.Writer) *replSession {
	return &replSession{cc: cc, out: out, errOut: errOut}
}

func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return continuationPrompt
	}
	return s.cc.Cfg.REPL.Prompt
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// handleLine processes one line of input and reports whether the session
// should end.
func (s *replSession) handleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(trimmed, ".") {
		return s.handleDotCommand(trimmed)
	}

	// Accumulate multi-line SQL until semicolon
	if s.buf.Len() > 0 {
		s.buf.WriteString("\n")
	}
	s.buf.WriteString(trimmed)
	if !strings.HasSuffix(trimmed, ";") {
		return false
	}

	sql := s.buf.String()
	s.buf.Reset()
	if err := s.execute(sql); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	_, _ = fmt.Fprintln(s.out)
	return false
}

func (s *replSession) execute(sql string) error {
	stmts, err := s.cc.Parser.Parse(sql)
	if err != nil {
		return err
	}

	if s.formatMode {
		opts := s.cc.Cfg.FormatOptions()
		for _, stmt := range stmts {
			_, _ = fmt.Fprintln(s.out, format.Segmented(stmt, opts))
		}
		return nil
	}
	return output.RenderParse(s.cc.Renderer, []output.FileResult{{File: replSource, Statements: stmts}})
}

func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".mode":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "Output mode: %s\n", s.cc.Renderer.EffectiveMode())
			return false
		}
		mode, err := output.ParseMode(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.cc.Renderer.SetMode(mode)
		_, _ = fmt.Fprintf(s.out, "Output mode: %s\n", s.cc.Renderer.EffectiveMode())

	case ".format":
		s.formatMode = !s.formatMode
		state := "off"
		if s.formatMode {
			state = "on"
		}
		_, _ = fmt.Fprintf(s.out, "Format mode: %s\n", state)

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .mode [mode]    Show or set the output mode (` + strings.Join(output.ModeNames(), "|") + `)
  .format         Toggle printing statements re-serialized instead of as segments
  .quit / .exit   Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot commands and statement keywords.
func newREPLCompleter() *readline.PrefixCompleter {
	modes := make([]readline.PrefixCompleterInterface, 0, len(output.Modes))
	for _, m := range output.ModeNames() {
		modes = append(modes, readline.PcItem(m))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".mode", modes...),
		readline.PcItem(".format"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItem("SELECT"),
		readline.PcItem("WITH"),
		readline.PcItem("INSERT INTO"),
		readline.PcItem("UPDATE"),
		readline.PcItem("DELETE FROM"),
	)
}
