package display

import (
	"fmt"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

var _ Display = (*X11)(nil)

// X11 is a Display backed by an X server connection. Keyboard mappings are
// the ones xgbutil's keybind package keeps for the connection.
type X11 struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

// Open connects to the named X display ("" means $DISPLAY) and loads its
// keyboard mapping.
func Open(name string) (*X11, error) {
	xu, err := xgbutil.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w", name, err)
	}
	keybind.Initialize(xu)

	return &X11{xu: xu, root: xu.RootWin()}, nil
}

// GrabKey issues a checked passive grab on the root window.
func (x *X11) GrabKey(code Keycode, mods ModMask, ownerEvents bool, pointerMode, keyboardMode GrabMode) GrabCookie {
	return xproto.GrabKeyChecked(
		x.xu.Conn(),
		ownerEvents,
		x.root,
		uint16(mods),
		xproto.Keycode(code),
		byte(pointerMode),
		byte(keyboardMode),
	)
}

// GrabKeyboard actively grabs the whole keyboard on the root window.
func (x *X11) GrabKeyboard(ownerEvents bool, pointerMode, keyboardMode GrabMode, t Timestamp) error {
	reply, err := xproto.GrabKeyboard(
		x.xu.Conn(),
		ownerEvents,
		x.root,
		xproto.Timestamp(t),
		byte(pointerMode),
		byte(keyboardMode),
	).Reply()
	if err != nil {
		return fmt.Errorf("keyboard grab failed: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab refused with status %d", reply.Status)
	}
	return nil
}

// KeysymFromName returns the keysym named by name. Names follow the X keysym
// vocabulary ("a", "J", "Return", "F5", "space"). A single character names
// its own keysym, so "J" and "j" differ.
func (x *X11) KeysymFromName(name string) (Keysym, error) {
	if sym, ok := runeKeysym(name); ok {
		return sym, nil
	}

	// Multi-character names carry no case variants: the named keysym is the
	// first one bound to the key.
	for _, code := range keybind.StrToKeycodes(x.xu, name) {
		for col := 0; col < x.perKeycode(); col++ {
			if sym := keybind.KeysymGet(x.xu, code, byte(col)); sym != 0 {
				return Keysym(sym), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeycodeFromKeysym returns the first keycode that produces sym in any
// column of the keyboard mapping.
func (x *X11) KeycodeFromKeysym(sym Keysym) (Keycode, error) {
	km := keybind.KeyMapGet(x.xu)
	first := xproto.Setup(x.xu.Conn()).MinKeycode
	if code, ok := findKeycode(km.Keysyms, int(km.KeysymsPerKeycode), first, sym); ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: keysym 0x%x", ErrUnknownKey, uint32(sym))
}

func (x *X11) perKeycode() int {
	return int(keybind.KeyMapGet(x.xu).KeysymsPerKeycode)
}

// runeKeysym maps a single-character name to its keysym: Latin-1 characters
// are their own keysym, other Unicode characters sit at 0x01000000 + rune.
func runeKeysym(name string) (Keysym, bool) {
	if utf8.RuneCountInString(name) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	switch {
	case r == utf8.RuneError, r < 0x20, r >= 0x7f && r < 0xa0:
		return 0, false
	case r <= 0xff:
		return Keysym(r), true
	}
	return Keysym(0x01000000 | r), true
}

func findKeycode(keysyms []xproto.Keysym, perKeycode int, first xproto.Keycode, sym Keysym) (Keycode, bool) {
	if perKeycode == 0 || sym == 0 {
		return 0, false
	}
	for i, s := range keysyms {
		if s == xproto.Keysym(sym) {
			return Keycode(int(first) + i/perKeycode), true
		}
	}
	return 0, false
}

// reloadsKeymap reports whether e changes the keyboard or modifier mapping.
func reloadsKeymap(e xproto.MappingNotifyEvent) bool {
	return e.Request == xproto.MappingKeyboard || e.Request == xproto.MappingModifier
}

// NextEvent blocks until the server delivers an event. Events other than
// key presses and releases come back with a zero Type. A keyboard mapping
// change reloads the mapping used by KeysymFromName and KeycodeFromKeysym.
func (x *X11) NextEvent() (Event, error) {
	ev, xerr := x.xu.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		return Event{}, ErrClosed
	}
	if xerr != nil {
		return Event{}, &ProtocolError{Err: xerr}
	}

	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return Event{Type: KeyPressMask, Detail: Keycode(e.Detail)}, nil
	case xproto.KeyReleaseEvent:
		return Event{Type: KeyReleaseMask, Detail: Keycode(e.Detail)}, nil
	case xproto.MappingNotifyEvent:
		if reloadsKeymap(e) {
			keyMap, modMap := keybind.MapsGet(x.xu)
			keybind.KeyMapSet(x.xu, keyMap)
			keybind.ModMapSet(x.xu, modMap)
		}
	}
	return Event{}, nil
}

// Close shuts the connection down. Grabs are released by the server.
func (x *X11) Close() error {
	x.xu.Conn().Close()
	return nil
}
