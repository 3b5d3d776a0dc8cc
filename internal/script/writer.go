// Package script emits console statements as browser script text.
package script

import (
	"bytes"
	"strings"

	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/internal/escape"
)

// Writer is a core.Emitter that accumulates console statements.
//
// Each statement has the form console.<fn>('<fmt>','<css1>','<css2>',...);
// where <fmt> holds one space-separated %c placeholder per token.
type Writer struct {
	b     bytes.Buffer
	depth int
}

// NewWriter creates an empty script writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Log writes a console.log statement.
func (w *Writer) Log(items []core.LogItem) {
	w.statement("log", items)
}

// Group writes a console.groupCollapsed statement.
func (w *Writer) Group(items []core.LogItem) {
	w.statement("groupCollapsed", items)
	w.depth++
}

// GroupEnd writes a console.groupEnd statement.
func (w *Writer) GroupEnd() {
	w.b.WriteString("console.groupEnd();")
	w.depth--
}

// Depth returns the number of groups currently open.
func (w *Writer) Depth() int {
	return w.depth
}

// Reset discards everything written so far.
func (w *Writer) Reset() {
	w.b.Reset()
	w.depth = 0
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.b.Len()
}

// String returns the statements written so far.
func (w *Writer) String() string {
	return w.b.String()
}

func (w *Writer) statement(fn string, items []core.LogItem) {
	w.b.WriteString("console.")
	w.b.WriteString(fn)
	w.b.WriteString("('")
	for i, item := range items {
		if i > 0 {
			w.b.WriteByte(' ')
		}
		w.b.WriteString("%c")
		if item.Literal {
			w.b.WriteString(item.Text)
			continue
		}
		w.b.WriteString(escape.Console(item.Text))
	}
	w.b.WriteByte('\'')
	for _, item := range items {
		w.b.WriteString(",'")
		w.b.WriteString(item.Style.CSS())
		w.b.WriteByte('\'')
	}
	w.b.WriteString(");")
}

// Wrap encloses body in a script element. A non-empty nonce is attribute
// escaped and emitted as the nonce attribute.
func Wrap(body, nonce string) string {
	var b strings.Builder
	b.Grow(len(body) + len(nonce) + 32)
	b.WriteString("<script")
	if nonce != "" {
		b.WriteString(` nonce="`)
		b.WriteString(escape.Attr(nonce))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(body)
	b.WriteString("</script>")
	return b.String()
}
