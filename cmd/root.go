package cmd

import (
	"github.com/grovetools/core/cli"
	"github.com/grovetools/keybind/pkg/display"
	"github.com/grovetools/keybind/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// openDisplay connects to the X server. Replaced in tests.
var openDisplay = func(name string) (display.Display, error) {
	return display.Open(name)
}

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	rules   ruleList
	file    string
	debug   bool
	display string
	sniff   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := cli.NewStandardCommand("keybind", "Global key binding made easy")
	cmd.Long = `Bind global key combinations to shell commands on X11.

Keys are written as modifier names followed by a key name, joined by "-"
(Ctrl-Alt-T, Super-Return, J), or as a raw keycode (38). Modifiers are
Ctrl, Shift, CapsLock, Alt, NumLock and Super. A key without modifiers
is grabbed with NumLock. Bindings keep working whatever the NumLock and
CapsLock state.

A rule without a command only intercepts the key and logs it.`
	cmd.Example = `  # Open a terminal on Ctrl+Alt+T
  keybind -k "Ctrl-Alt-T=xterm"

  # Swallow keycode 38 and log every press
  keybind -k 38=

  # Load bindings from a file, then add one more
  keybind -f ~/.config/keybind.toml -k "Super-L=slock"

  # Log the keycode of every key pressed
  keybind --sniff`
	cmd.Version = versionString()
	cmd.Args = cobra.NoArgs
	cmd.SilenceUsage = true
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBind(cmd, opts)
	}
	cmd.SetVersionTemplate("keybind {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.VarP(&opts.rules, "key", "k", `Binding rule "KEY=COMMAND" (repeatable)`)
	pf.StringVarP(&opts.file, "file", "f", "", "Read binding rules from a TOML, YAML or JSON file")
	pf.BoolVar(&opts.debug, "debug", false, "Print out debug info")
	pf.StringVar(&opts.display, "display", "", "X display to connect to (default $DISPLAY)")

	cmd.Flags().BoolVar(&opts.sniff, "sniff", false, "Intercept all keys. Use wisely, keep mouse ready.")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newDumpCmd(opts))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// logger returns the command's logger writing keybind's line format to the
// command's stderr.
func (o *rootOptions) logger(cmd *cobra.Command) *logrus.Logger {
	log := logger.Configure(cli.GetLogger(cmd), logger.Options{Debug: o.debug, Output: cmd.ErrOrStderr()})
	cmd.Flags().Visit(func(f *pflag.Flag) {
		log.Debugf("Flag --%s=%s", f.Name, f.Value)
	})
	return log
}
