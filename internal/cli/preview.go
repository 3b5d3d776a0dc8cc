package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/willibrandon/consoledump/configuration"
	"github.com/willibrandon/consoledump/preview"
)

func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags documentFlags
		theme string
		color string
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print a document the way the browser console shows it",
		Long: `Decodes a JSON, YAML or TOML document and prints the console statements
of its dump to the terminal, one line per statement, indented by group.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := c.readDocument(args, &flags)
			if err != nil {
				return err
			}

			t, err := c.previewTheme(theme, color)
			if err != nil {
				return err
			}
			return preview.Render(c.out, value, flags.label, t)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&theme, "theme", "", "colour theme: default, dark or none")
	cmd.Flags().StringVar(&color, "color", "auto", "when to use colours: auto, always or never")
	return cmd
}

// previewTheme resolves the theme flag, the configuration and the colour mode.
func (c *CLI) previewTheme(name, color string) (*preview.Theme, error) {
	switch color {
	case "never":
		return preview.NoColorTheme(), nil
	case "auto":
		if !isTerminal(c.out) {
			return preview.NoColorTheme(), nil
		}
	case "always":
	default:
		return nil, fmt.Errorf("invalid --color %q: want auto, always or never", color)
	}

	r := lipgloss.NewRenderer(c.out)
	if color == "always" {
		r.SetColorProfile(termenv.ANSI256)
	}

	config := *c.config
	if name != "" {
		config.ConsoleDump.Theme = name
	}
	return configuration.NewExtensionBuilder().Theme(&config, r)
}
