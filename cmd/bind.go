package cmd

import (
	"fmt"

	"github.com/grovetools/keybind/pkg/action"
	"github.com/grovetools/keybind/pkg/binder"
	"github.com/grovetools/keybind/pkg/keymap"
	"github.com/spf13/cobra"
)

// runBind registers the configured rules, or sniffs, and listens until the
// X connection goes away.
func runBind(cmd *cobra.Command, opts *rootOptions) error {
	if !opts.sniff && opts.file == "" && len(opts.rules) == 0 {
		return cmd.Help()
	}

	log := opts.logger(cmd)

	var bindings []binder.Binding
	if !opts.sniff {
		rules, err := opts.collectRules()
		if err != nil {
			return err
		}
		bindings = keymap.Bindings(rules, action.Options{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Logger: log,
		})
		log.Debugf("Loaded %d bindings", len(bindings))
	}

	disp, err := openDisplay(opts.display)
	if err != nil {
		return err
	}
	defer disp.Close()

	if _, err := binder.Activate(disp, binder.Options{Keymap: bindings, Logger: log}, false); err != nil {
		return fmt.Errorf("keybind: %w", err)
	}
	return nil
}
