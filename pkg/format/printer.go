package format

import (
	"bytes"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
	"github.com/leapstack-labs/sqlseg/pkg/token"
)

const indentSize = 2

// Printer handles SQL formatting with proper indentation and style.
type Printer struct {
	pretty      bool
	caser       cases.Caser
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter(opts Options) *Printer {
	caser := cases.Upper(language.Und)
	if opts.KeywordCase == KeywordLower {
		caser = cases.Lower(language.Und)
	}
	return &Printer{
		pretty:      opts.Pretty,
		caser:       caser,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n")
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) keyword(s string) {
	p.write(p.caser.String(s))
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.keyword(t.String())
	}
}

// brk separates two clauses: a line break in pretty mode, a space otherwise.
func (p *Printer) brk() {
	if !p.pretty {
		p.space()
		return
	}
	if !p.atLineStart {
		p.writeln()
	}
}

// block prints the body of a clause whose keyword was just written. In
// pretty mode the body goes on the following lines, one level deeper.
func (p *Printer) block(body func()) {
	if !p.pretty {
		p.space()
		body()
		return
	}
	p.writeln()
	p.indent()
	body()
	p.dedent()
}

// items prints count clause items, one per line in pretty mode.
func (p *Printer) items(count int, format func(i int)) {
	p.formatList(count, format, ",", p.pretty)
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string, multiline adds newlines after separators.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			} else {
				p.space()
			}
		}
	}
}

// nested prints a parenthesized statement.
func (p *Printer) nested(stmt ast.Statement) {
	p.write("(")
	if !p.pretty {
		p.formatStatement(stmt)
		p.write(")")
		return
	}
	p.writeln()
	p.indent()
	p.formatStatement(stmt)
	p.dedent()
	if !p.atLineStart {
		p.writeln()
	}
	p.write(")")
}
