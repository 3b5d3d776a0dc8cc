package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/consoledump"
)

func (c *CLI) scriptCommand() *cobra.Command {
	var (
		flags documentFlags
		nonce string
	)

	cmd := &cobra.Command{
		Use:   "script [file]",
		Short: "Print the console script of a document",
		Long: `Decodes a JSON, YAML or TOML document and prints the <script> element
the dump template function renders for it. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			value, err := c.readDocument(args, &flags)
			if err != nil {
				return err
			}

			if nonce == "" {
				nonce = c.config.ConsoleDump.ScriptNonce
			}
			out := consoledump.Render(value, flags.label, consoledump.Options{ScriptNonce: nonce})
			logger.Debug("rendered script", "bytes", len(out))

			_, err = fmt.Fprintln(c.out, out)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce attribute of the script element")
	return cmd
}
