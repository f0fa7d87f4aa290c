// Package display defines the windowing-system surface the key binder needs
// and implements it for the X11 core protocol.
package display

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Keycode is a hardware key code as reported by the X server (8..255).
type Keycode uint8

// Keysym is a symbolic key identifier (XK_* value).
type Keysym uint32

// ModMask is a bitmask of X11 key modifiers.
type ModMask uint16

// EventMask is a bitmask of X11 event selections.
type EventMask uint32

// GrabMode selects synchronous or asynchronous grab processing.
type GrabMode byte

// Timestamp is an X server time value.
type Timestamp uint32

// Modifier bits of the core protocol.
const (
	ModShift   ModMask = xproto.ModMaskShift
	ModLock    ModMask = xproto.ModMaskLock
	ModControl ModMask = xproto.ModMaskControl
	Mod1       ModMask = xproto.ModMask1
	Mod2       ModMask = xproto.ModMask2
	Mod4       ModMask = xproto.ModMask4
)

// Event selections understood by NextEvent.
const (
	KeyPressMask   EventMask = xproto.EventMaskKeyPress
	KeyReleaseMask EventMask = xproto.EventMaskKeyRelease
)

const (
	GrabModeAsync GrabMode  = xproto.GrabModeAsync
	CurrentTime   Timestamp = xproto.TimeCurrentTime
)

var (
	// ErrUnknownKey is returned when a key name or keysym has no keycode on
	// the current keyboard mapping.
	ErrUnknownKey = errors.New("unknown key")
	// ErrClosed is returned by NextEvent once the connection is gone.
	ErrClosed = errors.New("display connection closed")
)

// Event is a single input event. Type carries the event-mask bit that
// selects this kind of event, so Type&mask tells whether it was asked for.
type Event struct {
	Type   EventMask
	Detail Keycode
}

// GrabCookie is the pending result of one grab request. Check blocks until
// the server has processed the request and returns the error it reported.
type GrabCookie interface {
	Check() error
}

// ProtocolError wraps an asynchronous error the server sent for some
// earlier request. The connection is still usable.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("x protocol error: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Display is the connection to the windowing system. Grabs are made on the
// root window of the default screen.
type Display interface {
	GrabKey(code Keycode, mods ModMask, ownerEvents bool, pointerMode, keyboardMode GrabMode) GrabCookie
	GrabKeyboard(ownerEvents bool, pointerMode, keyboardMode GrabMode, t Timestamp) error
	KeysymFromName(name string) (Keysym, error)
	KeycodeFromKeysym(sym Keysym) (Keycode, error)
	NextEvent() (Event, error)
	Close() error
}
