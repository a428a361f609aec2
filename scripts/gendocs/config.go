package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlseg/internal/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// configFields returns the configuration keys with their built-in defaults.
// This is based on internal/config/types.go Config.
func configFields() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Key: "output", Type: "string", Default: def.Output, Description: "Output mode: " + strings.Join(config.OutputModes, ", ")},
		{Key: "verbose", Type: "bool", Default: strconv.FormatBool(def.Verbose), Description: "Log parse strategy decisions to stderr"},
		{Key: "normalize", Type: "bool", Default: strconv.FormatBool(def.Normalize), Description: "Recompute parameter positions before output"},
		{Key: "format.pretty", Type: "bool", Default: strconv.FormatBool(def.Format.Pretty), Description: "Put each clause on its own line"},
		{Key: "format.keyword_case", Type: "string", Default: def.Format.KeywordCase, Description: "Keyword case: upper or lower"},
		{Key: "parse.concurrency", Type: "int", Default: strconv.Itoa(def.Parse.Concurrency), Description: fmt.Sprintf("Files parsed at once (1-%d)", config.MaxConcurrency)},
		{Key: "repl.history_file", Type: "string", Default: "~/" + config.DefaultHistoryFile, Description: "REPL history file; relative paths are under the home directory"},
		{Key: "repl.prompt", Type: "string", Default: strconv.Quote(def.REPL.Prompt), Description: "REPL prompt"},
	}
}

// envVarName returns the environment variable that sets key.
func envVarName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "sqlseg configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("sqlseg reads %s (or %s) from the working directory, or the file passed with %s.",
		InlineCode(config.ConfigFileName), InlineCode(config.ConfigFileNameAlt), InlineCode("--config")))
	w.Paragraph("Unknown keys are rejected.")

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Environment", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		rows = append(rows, []string{
			InlineCode(f.Key),
			f.Type,
			InlineCode(f.Default),
			InlineCode(envVarName(f.Key)),
			f.Description,
		})
	}
	w.Table(headers, rows)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags that were set explicitly",
		"Environment variables",
		"The config file",
		"Built-in defaults",
	})

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# sqlseg.yaml
output: table
verbose: false
normalize: false

format:
  pretty: true
  keyword_case: lower

parse:
  concurrency: 8

repl:
  history_file: .sqlseg_history
  prompt: "sql> "`)

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
