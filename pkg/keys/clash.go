package keys

import (
	"sort"
	"strings"

	"github.com/grovetools/keybind/pkg/display"
)

type combo struct {
	code display.Keycode
	mask display.ModMask
}

type claim struct {
	code   display.Keycode
	labels string
}

// DetectConflicts finds resolved bindings that cannot coexist.
//
// Two kinds are reported. Exact conflicts are labels whose grabs overlap once
// their masks are expanded over the NumLock and CapsLock states (the second
// grab fails or replaces the first); Mask is the lowest mask they share.
// Keycode conflicts are labels on the same keycode under any mask, since
// dispatch is keyed by keycode alone and only the last registered handler
// fires.
func DetectConflicts(bindings []Resolved) []Conflict {
	var conflicts []Conflict

	byCode := make(map[display.Keycode][]string)
	byCombo := make(map[combo][]string)

	for _, b := range bindings {
		byCode[b.Code] = appendUnique(byCode[b.Code], b.Label)
		for _, mask := range ExpandLocks(b.Mask) {
			c := combo{b.Code, mask}
			byCombo[c] = appendUnique(byCombo[c], b.Label)
		}
	}

	// One exact conflict per keycode and label set, at the lowest shared mask
	exact := make(map[claim]int)
	for c, labels := range byCombo {
		if len(labels) < 2 {
			continue
		}
		key := claim{c.code, strings.Join(labels, "\x00")}
		if i, ok := exact[key]; ok {
			if c.mask < *conflicts[i].Mask {
				mask := c.mask
				conflicts[i].Mask = &mask
			}
			continue
		}
		mask := c.mask
		exact[key] = len(conflicts)
		conflicts = append(conflicts, Conflict{Code: c.code, Mask: &mask, Labels: labels})
	}
	for code, labels := range byCode {
		if len(labels) > 1 {
			conflicts = append(conflicts, Conflict{Code: code, Labels: labels})
		}
	}

	// Sort by keycode, exact combinations before keycode-only, for stable output
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Code != conflicts[j].Code {
			return conflicts[i].Code < conflicts[j].Code
		}
		if (conflicts[i].Mask == nil) != (conflicts[j].Mask == nil) {
			return conflicts[i].Mask != nil
		}
		if conflicts[i].Mask != nil && *conflicts[i].Mask != *conflicts[j].Mask {
			return *conflicts[i].Mask < *conflicts[j].Mask
		}
		return strings.Join(conflicts[i].Labels, "\x00") < strings.Join(conflicts[j].Labels, "\x00")
	})

	return conflicts
}

// HasExactConflicts returns true if any conflict pins both keycode and mask.
func HasExactConflicts(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Mask != nil {
			return true
		}
	}
	return false
}

func appendUnique(labels []string, label string) []string {
	for _, l := range labels {
		if l == label {
			return labels
		}
	}
	return append(labels, label)
}
