package cmd

import (
	"fmt"
	"strings"

	"github.com/grovetools/keybind/pkg/keymap"
)

// ruleList is a repeatable "KEY=COMMAND" flag.
type ruleList []keymap.Rule

func (l *ruleList) String() string {
	parts := make([]string, len(*l))
	for i, r := range *l {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

func (l *ruleList) Set(s string) error {
	r, err := keymap.ParseRule(s)
	if err != nil {
		return err
	}
	*l = append(*l, r)
	return nil
}

func (l *ruleList) Type() string {
	return "KEY=COMMAND"
}

// collectRules returns the rules of --file followed by the -k rules.
func (o *rootOptions) collectRules() ([]keymap.Rule, error) {
	var rules []keymap.Rule
	if o.file != "" {
		f, err := keymap.Load(o.file)
		if err != nil {
			return nil, err
		}
		rules = append(rules, f.Bindings...)
	}
	rules = append(rules, o.rules...)
	if len(rules) == 0 {
		return nil, fmt.Errorf("no bindings given: use -k KEY=COMMAND or --file")
	}
	return rules, nil
}
