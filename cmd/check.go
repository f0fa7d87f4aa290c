package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/core/cli"
	"github.com/grovetools/keybind/pkg/binder"
	"github.com/grovetools/keybind/pkg/keys"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := cli.NewStandardCommand("check", "Resolve bindings against the X server without grabbing them")
	cmd.Long = `Parse every binding, resolve its key name to a keycode and its modifiers
to a mask, and report bindings that cannot coexist.

Nothing is grabbed. The command fails when a key cannot be resolved or when
two bindings claim the same key and modifiers.

With --json the report is printed as JSON instead of a table.`
	cmd.Example = `  keybind check -k "Ctrl-K=xterm" -k "K=xclock"
  keybind check -f ~/.config/keybind.yaml --json`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, opts)
	}

	return cmd
}

// checkEntry is one binding of the check report.
type checkEntry struct {
	Key       string `json:"key"`
	Keycode   int    `json:"keycode"`
	Modifiers string `json:"modifiers"`
	Command   string `json:"command,omitempty"`
	Error     string `json:"error,omitempty"`
}

// checkConflict is one conflict of the check report. Modifiers is empty for
// keycode-only conflicts.
type checkConflict struct {
	Keycode   int      `json:"keycode"`
	Modifiers string   `json:"modifiers,omitempty"`
	Keys      []string `json:"keys"`
}

type checkReport struct {
	Bindings  []checkEntry    `json:"bindings"`
	Conflicts []checkConflict `json:"conflicts"`
}

func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	log := opts.logger(cmd)

	rules, err := opts.collectRules()
	if err != nil {
		return err
	}

	disp, err := openDisplay(opts.display)
	if err != nil {
		return err
	}
	defer disp.Close()

	b, err := binder.New(disp, binder.Options{Logger: log})
	if err != nil {
		return err
	}

	report := checkReport{Bindings: []checkEntry{}, Conflicts: []checkConflict{}}
	var resolved []keys.Resolved
	failed := 0
	for _, r := range rules {
		res, grab, err := b.Resolve(r.BindingKey(), keys.DefaultModifier)
		if err != nil {
			return err
		}

		e := checkEntry{Key: res.Label, Modifiers: keys.MaskString(res.Mask), Command: r.Command}
		if grab.OK() {
			e.Keycode = int(res.Code)
			resolved = append(resolved, res)
		} else {
			failed++
			e.Error = grab.Err().Error()
		}
		report.Bindings = append(report.Bindings, e)
	}

	conflicts := keys.DetectConflicts(resolved)
	for _, c := range conflicts {
		cc := checkConflict{Keycode: int(c.Code), Keys: c.Labels}
		if c.Mask != nil {
			cc.Modifiers = keys.MaskString(*c.Mask)
		}
		report.Conflicts = append(report.Conflicts, cc)
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		if err := writeCheckJSON(out, report); err != nil {
			return err
		}
	} else {
		writeCheckTable(out, report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bindings cannot be registered", failed, len(rules))
	}
	if keys.HasExactConflicts(conflicts) {
		return fmt.Errorf("conflicting bindings")
	}
	return nil
}

func writeCheckJSON(w io.Writer, report checkReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func writeCheckTable(w io.Writer, report checkReport) {
	var rows [][]string
	for _, e := range report.Bindings {
		code := strconv.Itoa(e.Keycode)
		status := successStyle.Render("ok")
		if e.Error != "" {
			code = "-"
			status = errorStyle.Render(e.Error)
		}
		command := e.Command
		if command == "" {
			command = faintStyle.Render("(intercept)")
		}
		rows = append(rows, []string{e.Key, code, e.Modifiers, command, status})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("KEY", "KEYCODE", "MODIFIERS", "COMMAND", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())

	for _, c := range report.Conflicts {
		if c.Modifiers != "" {
			fmt.Fprintf(w, "%s keycode %d with %s is claimed by %s\n",
				errorStyle.Render("conflict:"), c.Keycode, c.Modifiers, strings.Join(c.Keys, ", "))
			continue
		}
		fmt.Fprintf(w, "%s keycode %d is shared by %s; only the last one fires\n",
			warningStyle.Render("warning:"), c.Keycode, strings.Join(c.Keys, ", "))
	}
}
