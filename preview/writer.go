// Package preview prints console statements to a terminal.
//
// The output has one line per log or group statement. Lines are indented by
// the number of open groups, and group headers carry a marker. Tokens are
// styled with lipgloss.
package preview

import (
	"io"
	"strings"

	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/internal/render"
)

// controlChars makes line breaks and escape sequences inside tokens visible,
// so every statement stays on one line.
var controlChars = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\x1b", `\x1b`,
)

// Writer is a core.Emitter that writes styled lines to an io.Writer.
type Writer struct {
	out   io.Writer
	theme *Theme
	depth int
	err   error
}

// NewWriter creates a preview writer. A nil theme means NoColorTheme.
func NewWriter(out io.Writer, theme *Theme) *Writer {
	if theme == nil {
		theme = NoColorTheme()
	}
	return &Writer{out: out, theme: theme}
}

// Log writes a line for a log statement.
func (w *Writer) Log(items []core.LogItem) {
	w.line(strings.Repeat(" ", len([]rune(w.theme.GroupMarker))), items)
}

// Group writes a group header line and indents what follows.
func (w *Writer) Group(items []core.LogItem) {
	w.line(w.theme.GroupMarker, items)
	w.depth++
}

// GroupEnd ends the innermost group. It writes nothing.
func (w *Writer) GroupEnd() {
	if w.depth > 0 {
		w.depth--
	}
}

// Err returns the first error returned by the underlying writer.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) line(marker string, items []core.LogItem) {
	if w.err != nil {
		return
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(w.theme.Indent, w.depth))
	b.WriteString(marker)
	for _, item := range items {
		b.WriteByte(' ')
		b.WriteString(w.theme.Style(item.Style).Render(controlChars.Replace(item.Text)))
	}
	b.WriteByte('\n')

	_, w.err = io.WriteString(w.out, b.String())
}

// Render writes the preview of value to out. A non-empty label is shown in
// front of the first line.
func Render(out io.Writer, value any, label string, theme *Theme) error {
	w := NewWriter(out, theme)

	var prefix []core.LogItem
	if label != "" {
		prefix = []core.LogItem{core.Item(label, core.StyleName)}
	}
	render.New().Render(w, value, prefix)

	return w.Err()
}
