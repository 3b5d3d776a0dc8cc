package preview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/consoledump/core"
)

// Theme defines the terminal styles of each token class.
type Theme struct {
	Type        lipgloss.Style
	Value       lipgloss.Style
	StringValue lipgloss.Style
	Arrow       lipgloss.Style
	Name        lipgloss.Style
	Note        lipgloss.Style

	// GroupMarker is printed in front of group headers.
	GroupMarker string

	// Indent is repeated once per open group.
	Indent string
}

// DefaultTheme returns the colours of the browser console styles, rendered
// for the terminal behind r.
func DefaultTheme(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Theme{
		Type:        r.NewStyle().Foreground(lipgloss.Color("#555555")),
		Value:       r.NewStyle().Foreground(lipgloss.Color("#660088")).Bold(true),
		StringValue: r.NewStyle().Foreground(lipgloss.Color("#990000")).Bold(true),
		Arrow:       r.NewStyle().Foreground(lipgloss.Color("#555555")),
		Name:        r.NewStyle().Foreground(lipgloss.Color("#0000bb")),
		Note:        r.NewStyle().Foreground(lipgloss.Color("#555555")).Italic(true),
		GroupMarker: "▸",
		Indent:      "  ",
	}
}

// DarkTheme returns brighter variants of the default colours for dark
// terminal backgrounds.
func DarkTheme(r *lipgloss.Renderer) *Theme {
	t := DefaultTheme(r)
	t.Type = t.Type.Foreground(lipgloss.Color("245"))
	t.Value = t.Value.Foreground(lipgloss.Color("177"))
	t.StringValue = t.StringValue.Foreground(lipgloss.Color("210"))
	t.Arrow = t.Arrow.Foreground(lipgloss.Color("240"))
	t.Name = t.Name.Foreground(lipgloss.Color("75"))
	t.Note = t.Note.Foreground(lipgloss.Color("245"))
	return t
}

// NoColorTheme returns a theme without any styling.
func NoColorTheme() *Theme {
	plain := lipgloss.NewStyle()
	return &Theme{
		Type:        plain,
		Value:       plain,
		StringValue: plain,
		Arrow:       plain,
		Name:        plain,
		Note:        plain,
		GroupMarker: "▸",
		Indent:      "  ",
	}
}

// Style returns the style of the given token class. Unknown classes use the
// type style.
func (t *Theme) Style(class core.StyleClass) lipgloss.Style {
	switch class {
	case core.StyleValue:
		return t.Value
	case core.StyleStringValue:
		return t.StringValue
	case core.StyleArrow:
		return t.Arrow
	case core.StyleName:
		return t.Name
	case core.StyleNote:
		return t.Note
	default:
		return t.Type
	}
}
