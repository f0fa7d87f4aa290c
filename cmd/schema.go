package cmd

import (
	"fmt"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/keybind/pkg/keymap"
	"github.com/spf13/cobra"
)

// newSchemaCmd creates the `schema` command.
func newSchemaCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("schema", "Print the JSON schema of the bindings file")
	cmd.Long = `Print the JSON schema describing the bindings file accepted by --file.

Point an editor at it for completion and validation of YAML or JSON files.`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		data, err := keymap.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	return cmd
}
