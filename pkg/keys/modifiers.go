package keys

import (
	"errors"
	"fmt"

	"github.com/grovetools/keybind/pkg/display"
)

// DefaultModifier is used when a descriptor names no modifier. NumLock is
// normally inert, so a plain key can still be grabbed without colliding with
// modifier-less grabs held by other clients.
const DefaultModifier = "NumLock"

// ErrUnknownModifier is returned for a modifier name ModifierMask does not know.
var ErrUnknownModifier = errors.New("unknown modifier")

type modifier struct {
	name string
	mask display.ModMask
}

// Ordered as MaskString renders them.
var modifiers = []modifier{
	{"Ctrl", display.ModControl},
	{"Shift", display.ModShift},
	{"Alt", display.Mod1},
	{"Super", display.Mod4},
	{"CapsLock", display.ModLock},
	{"NumLock", display.Mod2},
}

// ModifierMask returns the X11 mask bit of the named modifier.
func ModifierMask(name string) (display.ModMask, bool) {
	for _, m := range modifiers {
		if m.name == name {
			return m.mask, true
		}
	}
	return 0, false
}

// ModifierNames lists the modifier names ResolveMask accepts.
func ModifierNames() []string {
	names := make([]string, len(modifiers))
	for i, m := range modifiers {
		names[i] = m.name
	}
	return names
}

// ResolveMask ORs together the masks of names. When names is empty the
// default modifier is used instead.
func ResolveMask(names []string, defaultModifier string) (display.ModMask, error) {
	if len(names) == 0 {
		names = []string{defaultModifier}
	}

	var mask display.ModMask
	for _, name := range names {
		bit, ok := ModifierMask(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
		}
		mask |= bit
	}
	return mask, nil
}

// ExpandLocks returns the four masks that must all be grabbed for a binding
// to keep working whatever the NumLock and CapsLock state. AnyModifier is
// not used because it fails with BadAccess as soon as any other client holds
// an overlapping grab.
func ExpandLocks(mask display.ModMask) [4]display.ModMask {
	return [4]display.ModMask{
		mask,
		mask | display.Mod2,
		mask | display.ModLock,
		mask | display.Mod2 | display.ModLock,
	}
}

// MaskString renders mask as "Ctrl+Alt".
func MaskString(mask display.ModMask) string {
	var s string
	for _, m := range modifiers {
		if mask&m.mask == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += m.name
	}
	if s == "" {
		return "none"
	}
	return s
}
