package core

// StyleClass specifies how a single token of a console statement is styled.
type StyleClass int

const (
	// StyleType is for type tags, e.g. null, int, string[3] or a qualified type name.
	StyleType StyleClass = iota

	// StyleValue is for ordinary values, e.g. false, 42, 10.5.
	StyleValue

	// StyleStringValue is for quoted strings and display strings.
	StyleStringValue

	// StyleArrow is for the arrow between a collection key and its value.
	StyleArrow

	// StyleName is for member names and labels.
	StyleName

	// StyleNote is for annotations: visibility words, parent, static and recursion.
	StyleNote
)

// styleCSS is indexed by StyleClass.
var styleCSS = [...]string{
	StyleType:        "color:#555;font-weight:400",
	StyleValue:       "color:#608;font-weight:600",
	StyleStringValue: "color:#900;font-weight:600",
	StyleArrow:       "color:#555;font-weight:400",
	StyleName:        "color:#00b;font-weight:400",
	StyleNote:        "color:#555;font-weight:400;font-style:italic",
}

// CSS returns the CSS declaration applied to tokens of this class.
// Unknown classes fall back to the type style.
func (s StyleClass) CSS() string {
	if s < 0 || int(s) >= len(styleCSS) {
		return styleCSS[StyleType]
	}
	return styleCSS[s]
}

// String returns the name of the style class.
func (s StyleClass) String() string {
	switch s {
	case StyleType:
		return "Type"
	case StyleValue:
		return "Value"
	case StyleStringValue:
		return "StringValue"
	case StyleArrow:
		return "Arrow"
	case StyleName:
		return "Name"
	case StyleNote:
		return "Note"
	default:
		return "Unknown"
	}
}

// LogItem is one styled token of a console statement.
type LogItem struct {
	// Text is the raw token text. Emitters escape it for their output medium.
	Text  string
	Style StyleClass

	// Literal marks fixed markup, such as the entry arrow, that is written
	// verbatim instead of escaped.
	Literal bool
}

// Item is shorthand for constructing a LogItem.
func Item(text string, style StyleClass) LogItem {
	return LogItem{Text: text, Style: style}
}

// Literal constructs a LogItem whose text is written verbatim.
func Literal(text string, style StyleClass) LogItem {
	return LogItem{Text: text, Style: style, Literal: true}
}
