package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer. Colors are only used when out is a
// terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	tty := isTerminal(out)
	styles := PlainStyles()
	if tty {
		styles = DefaultStyles()
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  tty,
		styles: styles,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto: text on a terminal, JSON otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto || r.mode == "" {
		if r.isTTY {
			return ModeText
		}
		return ModeJSON
	}
	return r.mode
}

// SetMode changes the output mode.
func (r *Renderer) SetMode(m Mode) {
	r.mode = m
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the text-mode styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the underlying output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Println writes a line.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a level 1 or level 2 heading.
func (r *Renderer) Header(level int, text string) {
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Muted writes a de-emphasized message.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// Error writes an error message to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("Error: "+msg))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML, keeping the key order of its JSON encoding.
func (r *Renderer) YAML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	// JSON is valid YAML; decoding into a node keeps key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("converting to yaml: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = r.out.Write(buf.Bytes())
	return err
}

// blockStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks block layout and plain scalars where it can.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// tableStyle is StyleLight with headers printed as given.
func tableStyle() table.Style {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	return style
}

// Table writes a table with the given header and rows.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(tableStyle())
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}
