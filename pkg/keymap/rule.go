// Package keymap turns "KEY=COMMAND" rules and bindings files into binder
// keymaps. Files are only ever read.
package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/grovetools/keybind/pkg/action"
	"github.com/grovetools/keybind/pkg/binder"
)

// ErrEmptyKey is returned for a rule without a key.
var ErrEmptyKey = errors.New("rule has no key")

// Rule binds a key descriptor to a shell command. An empty command makes
// the binding intercept-only.
type Rule struct {
	Key     string `toml:"key" yaml:"key" json:"key" jsonschema:"description=Key descriptor such as Ctrl-Alt-J or a raw keycode such as 38"`
	Command string `toml:"command,omitempty" yaml:"command,omitempty" json:"command,omitempty" jsonschema:"description=Shell command run on key press. Empty means intercept only."`
}

// ParseRule parses "KEY=COMMAND". Everything after the first "=" is the
// command; a rule without "=" is intercept-only.
func ParseRule(s string) (Rule, error) {
	key, cmd, _ := strings.Cut(s, "=")
	if key == "" {
		return Rule{}, fmt.Errorf("%w: %q", ErrEmptyKey, s)
	}
	return Rule{Key: key, Command: cmd}, nil
}

// String renders the rule back as "KEY=COMMAND".
func (r Rule) String() string {
	return r.Key + "=" + r.Command
}

// BindingKey returns the key as the binder expects it: an int for an
// all-digit key (a raw keycode), the descriptor string otherwise.
func (r Rule) BindingKey() any {
	if isDigits(r.Key) {
		if code, err := strconv.Atoi(r.Key); err == nil {
			return code
		}
	}
	return r.Key
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Bindings converts rules to a keymap whose handlers run the rule commands.
func Bindings(rules []Rule, opts action.Options) []binder.Binding {
	bindings := make([]binder.Binding, 0, len(rules))
	for _, r := range rules {
		bindings = append(bindings, binder.Binding{
			Key:     r.BindingKey(),
			Handler: action.Command(r.Command, opts),
		})
	}
	return bindings
}
