package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	clitestutil "github.com/leapstack-labs/sqlseg/internal/cli/testutil"
	"github.com/leapstack-labs/sqlseg/internal/config"
	"github.com/leapstack-labs/sqlseg/internal/testutil"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
)

func newTestSession(t *testing.T, mode output.Mode) (*replSession, *clitestutil.TestRenderer) {
	t.Helper()

	tr := clitestutil.NewTestRenderer(mode)
	logger := testutil.NewTestLogger(t)
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   logger,
		Renderer: tr.Renderer,
		Parser:   parser.New(parser.Config{Logger: logger}),
	}
	return newREPLSession(cc, tr.Out, tr.ErrOut), tr
}

func TestREPLSession_MultiLineStatement(t *testing.T) {
	s, tr := newTestSession(t, output.ModeText)

	assert.Equal(t, config.DefaultPrompt, s.prompt())
	assert.False(t, s.handleLine("SELECT a"))
	assert.Equal(t, continuationPrompt, s.prompt())
	assert.Empty(t, tr.Output(), "nothing runs before the semicolon")

	assert.False(t, s.handleLine("  FROM t WHERE id = ?;"))
	assert.Equal(t, config.DefaultPrompt, s.prompt())
	assert.Contains(t, tr.Output(), "select_statement")
	assert.Contains(t, tr.Output(), "params: ?@0")
	assert.Empty(t, tr.ErrorOutput())
}

func TestREPLSession_Reset(t *testing.T) {
	s, tr := newTestSession(t, output.ModeText)

	s.handleLine("SELECT broken")
	s.reset()
	assert.Equal(t, config.DefaultPrompt, s.prompt())

	s.handleLine("SELECT 1;")
	assert.Contains(t, tr.Output(), "SELECT 1;")
	assert.NotContains(t, tr.Output(), "broken")
}

func TestREPLSession_DotCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		quit     bool
		wantOut  string
		wantErr  string
		wantMode output.Mode
	}{
		{name: "quit", line: ".quit", quit: true},
		{name: "exit", line: ".EXIT", quit: true},
		{name: "help", line: ".help", wantOut: ".mode [mode]"},
		{name: "show mode", line: ".mode", wantOut: "Output mode: text", wantMode: output.ModeText},
		{name: "set mode", line: ".mode yaml", wantOut: "Output mode: yaml", wantMode: output.ModeYAML},
		{name: "bad mode", line: ".mode html", wantErr: `unknown output mode "html"`, wantMode: output.ModeText},
		{name: "format toggle", line: ".format", wantOut: "Format mode: on"},
		{name: "unknown", line: ".tables", wantErr: "Unknown command: .tables"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tr := newTestSession(t, output.ModeText)

			assert.Equal(t, tt.quit, s.handleLine(tt.line))
			if tt.wantOut != "" {
				assert.Contains(t, tr.Output(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, tr.ErrorOutput(), tt.wantErr)
			}
			if tt.wantMode != "" {
				assert.Equal(t, tt.wantMode, tr.EffectiveMode())
			}
		})
	}
}

func TestREPLSession_DotInsideStatement(t *testing.T) {
	s, tr := newTestSession(t, output.ModeText)

	s.handleLine("SELECT a")
	assert.False(t, s.handleLine(".quit"), "dot lines continue a pending statement")
	s.handleLine("FROM t;")
	assert.Empty(t, tr.ErrorOutput())
}

func TestREPLSession_FormatMode(t *testing.T) {
	s, tr := newTestSession(t, output.ModeText)

	require.False(t, s.handleLine(".format"))
	tr.Reset()

	s.handleLine("select a from t where b = ?;")
	assert.Equal(t, "SELECT a FROM t WHERE b = ?\n\n", tr.Output())
}

func TestREPLSession_JSONMode(t *testing.T) {
	s, tr := newTestSession(t, output.ModeJSON)

	s.handleLine("VACUUM;")
	assert.Contains(t, tr.Output(), `"file": "<repl>"`)
	assert.Contains(t, tr.Output(), `"sql_text": "VACUUM;"`)
}
