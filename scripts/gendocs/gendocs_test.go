package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	for _, name := range []string{"index.md", "parse.md", "format.md", "params.md", "repl.md", "version.md", "completion.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "`SQLSEG_FORMAT__KEYWORD_CASE`")
	assert.Contains(t, string(index), "`--output`")

	format, err := os.ReadFile(filepath.Join(dir, "format.md"))
	require.NoError(t, err)
	assert.Contains(t, string(format), "sqlseg format [file]")
	assert.Contains(t, string(format), "`format.keyword_case`")
	assert.Equal(t, 0, strings.Count(string(format), "```")%2, "code fences are balanced")
}

func TestGenerateConfigDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateConfigDocs(dir))

	data, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	doc := string(data)
	for _, key := range []string{"output", "format.pretty", "parse.concurrency", "repl.prompt"} {
		assert.Contains(t, doc, InlineCode(key))
	}
	assert.Contains(t, doc, "`SQLSEG_PARSE__CONCURRENCY`")
}

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| x\\|y | z |\n\n", string(w.Bytes()))

	w = NewMarkdownWriter()
	w.Table([]string{"A"}, nil)
	assert.Empty(t, w.Bytes())
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "sqlseg parse a.sql\nsqlseg parse -o json b.sql", cleanExample("  sqlseg parse a.sql\n  sqlseg parse -o json b.sql"))
}
