package cmd

import (
	"github.com/grovetools/core/cli"
	"github.com/grovetools/keybind/pkg/keymap"
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := cli.NewStandardCommand("dump", "Print the given binding rules as a bindings file")
	cmd.Long = `Render the rules given with -k and --file as a bindings file on stdout.
The output can be saved and passed back with --file.`
	cmd.Example = `  keybind dump -k "Ctrl-Alt-T=xterm" -k 38= > ~/.config/keybind.toml
  keybind dump -f keybind.toml --format yaml`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rules, err := opts.collectRules()
		if err != nil {
			return err
		}
		return keymap.Encode(cmd.OutOrStdout(), format, &keymap.File{Bindings: rules})
	}

	cmd.Flags().StringVar(&format, "format", keymap.FormatTOML, "Output format: toml, yaml or json")

	return cmd
}
