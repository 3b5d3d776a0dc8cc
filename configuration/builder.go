package configuration

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/consoledump"
	"github.com/willibrandon/consoledump/preview"
	"github.com/willibrandon/consoledump/selflog"
)

// ThemeFactory creates a preview theme for the given renderer.
type ThemeFactory func(r *lipgloss.Renderer) *preview.Theme

// ExtensionBuilder builds extensions and preview themes from configuration.
type ExtensionBuilder struct {
	themes map[string]ThemeFactory
}

// NewExtensionBuilder creates a builder with the built-in themes registered.
func NewExtensionBuilder() *ExtensionBuilder {
	eb := &ExtensionBuilder{themes: make(map[string]ThemeFactory)}

	eb.RegisterTheme("default", preview.DefaultTheme)
	eb.RegisterTheme("dark", preview.DarkTheme)
	eb.RegisterTheme("none", func(*lipgloss.Renderer) *preview.Theme {
		return preview.NoColorTheme()
	})

	return eb
}

// RegisterTheme registers a theme factory. Names are case-insensitive.
func (eb *ExtensionBuilder) RegisterTheme(name string, factory ThemeFactory) {
	eb.themes[strings.ToLower(name)] = factory
}

// Options returns the extension options described by config. Extra options
// are applied after them.
func (eb *ExtensionBuilder) Options(config *Configuration, extra ...consoledump.Option) []consoledump.Option {
	opts := []consoledump.Option{
		consoledump.WithDebug(config.ConsoleDump.DebugEnabled()),
	}
	if config.ConsoleDump.ScriptNonce != "" {
		opts = append(opts, consoledump.WithScriptNonce(config.ConsoleDump.ScriptNonce))
	}
	return append(opts, extra...)
}

// Build creates an extension from config.
func (eb *ExtensionBuilder) Build(config *Configuration, extra ...consoledump.Option) *consoledump.Extension {
	return consoledump.New(eb.Options(config, extra...)...)
}

// Theme creates the preview theme named in config. An empty name selects
// the default theme.
func (eb *ExtensionBuilder) Theme(config *Configuration, r *lipgloss.Renderer) (*preview.Theme, error) {
	name := strings.ToLower(config.ConsoleDump.Theme)
	if name == "" {
		name = "default"
	}

	factory, ok := eb.themes[name]
	if !ok {
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] unknown theme '%s'", config.ConsoleDump.Theme)
		}
		return nil, fmt.Errorf("unknown theme: %s", config.ConsoleDump.Theme)
	}
	return factory(r), nil
}
