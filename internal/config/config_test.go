package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/internal/testutil"
	"github.com/leapstack-labs/sqlseg/pkg/format"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output mode")
	flags.Bool("pretty", false, "pretty output")
	flags.String("keyword-case", "", "keyword case")
	flags.Int("concurrency", 0, "parse concurrency")
	flags.String("config", "", "config file")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Normalize)
	assert.Equal(t, DefaultKeywordCase, cfg.Format.KeywordCase)
	assert.Equal(t, DefaultConcurrency, cfg.Parse.Concurrency)
	assert.Equal(t, DefaultPrompt, cfg.REPL.Prompt)
	assert.Equal(t, filepath.Join(home, DefaultHistoryFile), cfg.REPL.HistoryFile)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `output: json
normalize: true
format:
  pretty: true
  keyword_case: lower
parse:
  concurrency: 8
repl:
  history_file: /tmp/sqlseg_history
  prompt: "> "
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.Normalize)
	assert.True(t, cfg.Format.Pretty)
	assert.Equal(t, "lower", cfg.Format.KeywordCase)
	assert.Equal(t, 8, cfg.Parse.Concurrency)
	assert.Equal(t, "/tmp/sqlseg_history", cfg.REPL.HistoryFile)
	assert.Equal(t, "> ", cfg.REPL.Prompt)
	assert.Equal(t, format.Options{Pretty: true, KeywordCase: format.KeywordLower}, cfg.FormatOptions())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `output: json
parse:
  concurrency: 2
format:
  keyword_case: lower
`)

	t.Setenv("SQLSEG_OUTPUT", "yaml")
	t.Setenv("SQLSEG_PARSE__CONCURRENCY", "16")

	flags := testFlags()
	require.NoError(t, flags.Set("output", "table"))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Output, "flag should override env var and file")
	assert.Equal(t, 16, cfg.Parse.Concurrency, "env var should override file")
	assert.Equal(t, "lower", cfg.Format.KeywordCase, "file should override default")
}

func TestLoad_UnsetFlagUsesEnv(t *testing.T) {
	t.Setenv("SQLSEG_FORMAT__PRETTY", "true")

	flags := testFlags()
	require.NoError(t, flags.Set("config", "ignored.yaml"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.True(t, cfg.Format.Pretty)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		env       map[string]string
		errSubstr string
	}{
		{
			name:      "unknown key",
			content:   "outptu: json\n",
			errSubstr: "outptu",
		},
		{
			name:      "unknown nested key",
			content:   "format:\n  indent: 4\n",
			errSubstr: "indent",
		},
		{
			name:      "invalid output",
			content:   "output: xml\n",
			errSubstr: "invalid output",
		},
		{
			name:      "invalid keyword case",
			content:   "format:\n  keyword_case: title\n",
			errSubstr: "format.keyword_case",
		},
		{
			name:      "concurrency out of range",
			content:   "parse:\n  concurrency: 0\n",
			errSubstr: "parse.concurrency",
		},
		{
			name:      "unknown env key",
			content:   "",
			env:       map[string]string{"SQLSEG_COLOR": "always"},
			errSubstr: "color",
		},
		{
			name:      "malformed yaml",
			content:   "output: [json\n",
			errSubstr: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"every output mode", func(c *Config) { c.Output = "table" }, false},
		{"empty output", func(c *Config) { c.Output = "" }, true},
		{"empty keyword case means upper", func(c *Config) { c.Format.KeywordCase = "" }, false},
		{"too much concurrency", func(c *Config) { c.Parse.Concurrency = MaxConcurrency + 1 }, true},
		{"empty prompt", func(c *Config) { c.REPL.Prompt = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "output", envKey("SQLSEG_OUTPUT"))
	assert.Equal(t, "format.keyword_case", envKey("SQLSEG_FORMAT__KEYWORD_CASE"))
	assert.Equal(t, "repl.history_file", envKey("SQLSEG_REPL__HISTORY_FILE"))
}

func TestGetLogger(t *testing.T) {
	// Falls back to a usable logger
	assert.NotNil(t, GetLogger(context.Background()))

	logger := testutil.NewTestLogger(t)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestGetConfig(t *testing.T) {
	assert.Equal(t, Default(), GetConfig(context.Background()))

	cfg := Default()
	cfg.Output = "yaml"
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}

func TestKeyForFlag(t *testing.T) {
	key, ok := KeyForFlag("keyword-case")
	assert.True(t, ok)
	assert.Equal(t, "format.keyword_case", key)

	_, ok = KeyForFlag("config")
	assert.False(t, ok)
}
