package consoledump

import (
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/mitchellh/mapstructure"

	"github.com/willibrandon/consoledump/selflog"
)

// FuncName is the name the dump function is registered under.
const FuncName = "dump"

// ErrTooManyArguments is returned when dump is called with more than a
// value, a label and options.
var ErrTooManyArguments = errors.New("consoledump: too many arguments")

// Extension exposes Render to Go templates as the dump function.
type Extension struct {
	debug       func() bool
	scriptNonce string
}

// New creates an Extension. Without options debug mode is off and every
// dump renders as the empty string.
func New(opts ...Option) *Extension {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Extension{
		debug:       cfg.debug,
		scriptNonce: cfg.scriptNonce,
	}
}

// IsDebug reports whether dumps are currently rendered.
func (e *Extension) IsDebug() bool {
	return e.debug != nil && e.debug()
}

// Dump is the dump template function:
//
//	{{ dump .Value }}
//	{{ dump .Value "label" }}
//	{{ dump .Value "label" (dict "script-nonce" .Nonce) }}
//
// The label may be nil. The options may be nil, a map with string keys, an
// Options or a *Options. Outside debug mode Dump returns "" without looking
// at its arguments.
func (e *Extension) Dump(value any, args ...any) (htmltemplate.HTML, error) {
	if !e.IsDebug() {
		return "", nil
	}

	label, opts, err := e.parseArgs(args)
	if err != nil {
		return "", err
	}

	return htmltemplate.HTML(Render(value, label, opts)), nil
}

// FuncMap returns the functions to register with html/template.
func (e *Extension) FuncMap() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{FuncName: e.Dump}
}

// TextFuncMap returns the functions to register with text/template.
func (e *Extension) TextFuncMap() texttemplate.FuncMap {
	return texttemplate.FuncMap{FuncName: e.Dump}
}

func (e *Extension) parseArgs(args []any) (label string, opts Options, err error) {
	if len(args) > 2 {
		return "", Options{}, fmt.Errorf("%w: got %d, want at most 3", ErrTooManyArguments, len(args)+1)
	}

	if len(args) > 0 && args[0] != nil {
		s, ok := args[0].(string)
		if !ok {
			return "", Options{}, fmt.Errorf("consoledump: label must be a string, got %T", args[0])
		}
		label = s
	}

	if len(args) > 1 {
		opts, err = DecodeOptions(args[1])
		if err != nil {
			return "", Options{}, err
		}
	}

	if opts.ScriptNonce == "" {
		opts.ScriptNonce = e.scriptNonce
	}
	return label, opts, nil
}

// DecodeOptions converts the options argument of dump into Options. Keys are
// matched ignoring case, dashes and underscores, so "script-nonce",
// "script_nonce" and "scriptNonce" all set ScriptNonce. Unknown keys are
// ignored and reported through selflog.
func DecodeOptions(input any) (Options, error) {
	switch v := input.(type) {
	case nil:
		return Options{}, nil
	case Options:
		return v, nil
	case *Options:
		if v == nil {
			return Options{}, nil
		}
		return *v, nil
	case map[string]any:
		input = normalizeKeys(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		input = normalizeKeys(m)
	}

	var opts Options
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, fmt.Errorf("consoledump: create options decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return Options{}, fmt.Errorf("consoledump: decode options: %w", err)
	}

	if len(md.Unused) > 0 && selflog.IsEnabled() {
		selflog.Printf("[consoledump] ignoring unknown dump options: %v", md.Unused)
	}
	return opts, nil
}

var keySeparators = strings.NewReplacer("-", "", "_", "")

// normalizeKeys strips dashes and underscores from option keys.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[keySeparators.Replace(k)] = v
	}
	return out
}
