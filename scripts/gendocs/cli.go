package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/sqlseg/internal/cli"
	"github.com/leapstack-labs/sqlseg/internal/config"
)

// documented returns the subcommands that get a page.
func documented(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	cmds := documented(rootCmd)

	if err := writeDoc(outDir, "index.md", cliIndex(rootCmd, cmds)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range cmds {
		if err := writeDoc(outDir, cmd.Name()+".md", commandPage(cmd, cmds)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

func writeDoc(dir, name string, w *MarkdownWriter) error {
	return os.WriteFile(filepath.Join(dir, name), w.Bytes(), 0600)
}

// cliIndex builds the CLI overview page.
func cliIndex(rootCmd *cobra.Command, cmds []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for sqlseg")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/sqlseg/cmd/sqlseg@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range cmds {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Every configuration key can be set with a %s variable. Nested keys use a double underscore.",
		InlineCode(config.EnvPrefix+"*")))
	var envRows [][]string
	for _, f := range configFields() {
		envRows = append(envRows, []string{InlineCode(envVarName(f.Key)), InlineCode(f.Key)})
	}
	w.Table([]string{"Variable", "Config key"}, envRows)
	w.Paragraph("Flags take precedence over environment variables, which take precedence over the config file.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error (details on stderr)"},
	})

	return w
}

// commandPage builds the page for one command.
func commandPage(cmd *cobra.Command, all []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	var related []string
	for _, other := range all {
		if other != cmd {
			related = append(related, fmt.Sprintf("[%s](/cli/%s)", InlineCode(other.Name()), other.Name()))
		}
	}
	if len(related) > 0 {
		w.Header(2, "See Also")
		w.BulletList(related)
	}

	return w
}

// writeFlagsTable writes a table of flags. Flags that set a configuration
// key name it in the last column.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if def != "" && f.Value.Type() == "string" {
			def = InlineCode(def)
		}
		key := ""
		if k, ok := config.KeyForFlag(f.Name); ok {
			key = InlineCode(k)
		}

		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage), key})
	})
	w.Table([]string{"Option", "Short", "Default", "Description", "Config key"}, rows)
}

// cleanExample strips the indentation shared by all non-empty lines.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
