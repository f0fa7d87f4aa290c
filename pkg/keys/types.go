// Package keys parses human-readable key descriptors such as "Ctrl-Alt-J",
// resolves their modifiers to X11 modifier masks, and detects bindings that
// would collide once grabbed.
package keys

import (
	"strconv"
	"strings"

	"github.com/grovetools/keybind/pkg/display"
)

// Descriptor is a parsed key reference. It is either a named key with an
// optional modifier chain, or a raw hardware code when HasCode is set.
type Descriptor struct {
	Modifiers []string // e.g. ["Ctrl", "Alt"]
	Key       string   // e.g. "J", "Return"
	Code      int      // raw keycode, only meaningful when HasCode is true
	HasCode   bool
}

// String returns the label the descriptor was written as.
func (d Descriptor) String() string {
	if d.HasCode {
		return strconv.Itoa(d.Code)
	}
	if len(d.Modifiers) == 0 {
		return d.Key
	}
	return strings.Join(d.Modifiers, "-") + "-" + d.Key
}

// Resolved is a binding after its key has been turned into a keycode and
// a modifier mask.
type Resolved struct {
	Label string
	Code  display.Keycode
	Mask  display.ModMask
}

// Conflict is a keycode, or keycode and mask pair, claimed by more than one
// binding. Mask is nil for keycode-only conflicts.
type Conflict struct {
	Code   display.Keycode
	Mask   *display.ModMask
	Labels []string
}
