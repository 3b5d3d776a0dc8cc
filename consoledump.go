// Package consoledump renders arbitrary Go values as browser console scripts.
//
// The output of Render is a <script> element whose body is a sequence of
// console.log, console.groupCollapsed and console.groupEnd calls. Opened in a
// browser, it prints a styled, collapsible view of the value in the developer
// tools console. Structs show their exported and unexported fields, embedded
// structs show up as parent groups, and reference cycles end in a recursion
// note instead of recursing forever.
//
// The Extension type wires Render into html/template and text/template as the
// dump function, active only while the host runs in debug mode:
//
//	ext := consoledump.New(consoledump.WithDebug(true))
//	tmpl := template.Must(template.New("page").Funcs(ext.FuncMap()).Parse(
//	    `<body>{{ dump .User "user" }}</body>`))
package consoledump

import (
	"github.com/willibrandon/consoledump/core"
	"github.com/willibrandon/consoledump/internal/render"
	"github.com/willibrandon/consoledump/internal/script"
)

// Options are the per-call rendering options.
type Options struct {
	// ScriptNonce is written as the nonce attribute of the script element,
	// for pages served with a Content-Security-Policy.
	ScriptNonce string `mapstructure:"scriptNonce" json:"scriptNonce,omitempty" yaml:"scriptNonce,omitempty"`
}

var defaultRenderer = render.New()

// Render returns value as a console script. A non-empty label is shown in
// front of the outermost statement.
//
// Render never fails. Panics raised by String, Error or ConsoleDescription
// methods are recovered and reported through selflog.
func Render(value any, label string, opts Options) string {
	w := getWriter()
	defer putWriter(w)

	var prefix []core.LogItem
	if label != "" {
		prefix = []core.LogItem{core.Item(label, core.StyleName)}
	}
	defaultRenderer.Render(w, value, prefix)

	return script.Wrap(w.String(), opts.ScriptNonce)
}
