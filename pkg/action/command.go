// Package action provides handlers that run shell commands when a bound
// key is pressed.
package action

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/grovetools/core/logging"
	"github.com/grovetools/keybind/pkg/binder"
	"github.com/sirupsen/logrus"
)

// DefaultShell runs command lines.
const DefaultShell = "/bin/sh"

// Options configures how commands run.
type Options struct {
	Shell  string             // Defaults to DefaultShell
	Stdout io.Writer          // Defaults to os.Stdout
	Stderr io.Writer          // Defaults to os.Stderr
	Logger logrus.FieldLogger // Defaults to the "action" component logger
}

// Run executes cmdline with "<shell> -c" and waits for it to exit.
func Run(cmdline string, opts Options) error {
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.Command(shell, "-c", cmdline)
	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", cmdline, err)
	}
	return nil
}

// Command returns a handler running cmdline. The handler blocks the event
// loop until the command exits. An empty cmdline yields a nil handler, which
// makes the binding intercept-only.
func Command(cmdline string, opts Options) binder.Handler {
	if cmdline == "" {
		return nil
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewLogger("action")
	}
	return func() {
		log.WithField("command", cmdline).Debug("Running command")
		if err := Run(cmdline, opts); err != nil {
			log.WithError(err).Error("Key action failed")
		}
	}
}
