// Package cli implements the consoledump command-line interface.
//
// The CLI reads a JSON, YAML or TOML document and shows it the way the dump
// template function would:
//   - script: print the console script
//   - preview: print the same statements to the terminal
//   - serve: serve a page that runs the script, for the browser console
//
// All commands support --verbose (-v) for debug-level logging, which also
// forwards selflog diagnostics, and --config for a configuration file.
// Loggers are passed through context.Context.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/willibrandon/consoledump/configuration"
	"github.com/willibrandon/consoledump/internal/input"
	"github.com/willibrandon/consoledump/selflog"
)

const appName = "consoledump"

// Build information, set by main through ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	in  io.Reader
	out io.Writer

	configFile string
	config     *configuration.Configuration
}

// New creates a CLI that reads documents from stdin when no file is given,
// writes results to out and logs to errw.
func New(in io.Reader, out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		in:     in,
		out:    out,
	}
}

// SetLogLevel updates the logger's level. At debug level the library's
// selflog diagnostics are forwarded to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= LogDebug {
		logger := c.Logger.WithPrefix("selflog")
		selflog.EnableFunc(func(msg string) {
			logger.Debug(msg)
		})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "consoledump renders documents as browser console scripts",
		Long:          `consoledump turns JSON, YAML and TOML documents into the console script produced by the dump template function, and previews it in the terminal or the browser.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, Version, Commit, Date))
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "configuration file (JSON or YAML)")

	root.AddCommand(c.scriptCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// loadConfig loads the configuration file, if any, and applies the
// environment on top of it.
func (c *CLI) loadConfig() error {
	config := &configuration.Configuration{}
	if c.configFile != "" {
		loaded, err := configuration.LoadFromFile(c.configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config = loaded
		c.Logger.Debug("loaded configuration", "file", c.configFile)
	}
	if err := configuration.ApplyEnvironment(config, nil); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.config = config
	return nil
}

// documentFlags are the flags shared by commands that read a document.
type documentFlags struct {
	format string
	label  string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "auto", "input format: auto, json, yaml or toml")
	cmd.Flags().StringVarP(&f.label, "label", "l", "", "label shown in front of the value")
}

// readDocument decodes the document named by args, or stdin when args is
// empty or "-".
func (c *CLI) readDocument(args []string, flags *documentFlags) (any, error) {
	format, err := input.ParseFormat(flags.format)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 || args[0] == "-" {
		if format == input.FormatAuto {
			format = input.FormatYAML
		}
		return input.DecodeReader(c.in, format)
	}
	return input.DecodeFile(args[0], format)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminalFd(f.Fd())
}
