package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/sqlseg/pkg/ast"
)

// snippetWidth bounds the SQL shown per segment in text and table modes.
const snippetWidth = 60

// FileResult is the parse result of one input.
type FileResult struct {
	File       string                    `json:"file"`
	Statements []*ast.SegmentedStatement `json:"statements"`
}

// ParamInfo describes one placeholder and its resolved position.
type ParamInfo struct {
	File        string `json:"file"`
	Segment     int    `json:"segment"`
	Placeholder string `json:"placeholder"`
	Position    int    `json:"position"`
}

// CollectParams lists the parameters of every statement segment in
// lexical order.
func CollectParams(results []FileResult) []ParamInfo {
	params := []ParamInfo{}
	for _, res := range results {
		for _, stmt := range res.Statements {
			for i, seg := range stmt.Segments {
				for _, p := range ast.Parameters(seg) {
					params = append(params, ParamInfo{
						File:        res.File,
						Segment:     i,
						Placeholder: p.Placeholder,
						Position:    p.Position,
					})
				}
			}
		}
	}
	return params
}

// SegmentKind names a segment for display: the statement kind for parsed
// segments, raw_fragment otherwise.
func SegmentKind(seg ast.Segment) string {
	if s, ok := seg.(*ast.StatementSegment); ok && s.Statement != nil {
		return string(s.Statement.Kind())
	}
	return string(seg.Kind())
}

// Snippet collapses whitespace in s and truncates it to width runes.
func Snippet(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// RenderParse writes parse results in the renderer's effective mode.
func RenderParse(r *Renderer, results []FileResult) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(results)
	case ModeYAML:
		return r.YAML(results)
	case ModeTable:
		var rows []table.Row
		for _, res := range results {
			for _, stmt := range res.Statements {
				for i, seg := range stmt.Segments {
					rows = append(rows, table.Row{
						res.File, i, SegmentKind(seg), len(ast.Parameters(seg)), Snippet(seg.SourceText(), snippetWidth),
					})
				}
			}
		}
		r.Table(table.Row{"File", "#", "Kind", "Params", "SQL"}, rows)
		return nil
	default:
		renderParseText(r, results)
		return nil
	}
}

func renderParseText(r *Renderer, results []FileResult) {
	styles := r.Styles()
	for n, res := range results {
		if len(results) > 1 {
			if n > 0 {
				r.Println("")
			}
			r.Header(2, res.File)
		}
		for _, stmt := range res.Statements {
			for i, seg := range stmt.Segments {
				label := styles.Raw.Render("raw      ")
				if _, ok := seg.(*ast.StatementSegment); ok {
					label = styles.Statement.Render("statement")
				}
				r.Printf("%2d %s %s %s\n", i, label,
					styles.Bold.Render(SegmentKind(seg)),
					Snippet(seg.SourceText(), snippetWidth))

				params := ast.Parameters(seg)
				if len(params) == 0 {
					continue
				}
				parts := make([]string, len(params))
				for j, p := range params {
					parts[j] = styles.Param.Render(fmt.Sprintf("%s@%d", p.Placeholder, p.Position))
				}
				r.Println("   " + styles.Muted.Render("params:") + " " + strings.Join(parts, " "))
			}
		}
	}
}

// RenderParams writes parameter listings in the renderer's effective mode.
func RenderParams(r *Renderer, params []ParamInfo) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(params)
	case ModeYAML:
		return r.YAML(params)
	default:
		if len(params) == 0 {
			r.Muted("(no parameters)")
			return nil
		}
		rows := make([]table.Row, len(params))
		for i, p := range params {
			rows[i] = table.Row{p.File, p.Segment, p.Placeholder, p.Position}
		}
		r.Table(table.Row{"File", "Segment", "Placeholder", "Position"}, rows)
		return nil
	}
}
