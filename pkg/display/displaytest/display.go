// Package displaytest provides a scriptable in-memory display.Display for
// tests. Key names resolve to the keysym of their single character and
// keysyms below 256 map to the keycode of the same value, so "K" is keycode
// 75 unless overridden.
package displaytest

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/grovetools/keybind/pkg/display"
)

var _ display.Display = (*Display)(nil)

// Grab records one GrabKey call.
type Grab struct {
	Code         display.Keycode
	Mods         display.ModMask
	OwnerEvents  bool
	PointerMode  display.GrabMode
	KeyboardMode display.GrabMode
}

type grabKey struct {
	code display.Keycode
	mods display.ModMask
}

type queued struct {
	ev  display.Event
	err error
}

// Display is a fake display. The zero value is not usable; call New.
type Display struct {
	// Block makes NextEvent wait for more events instead of failing with
	// display.ErrClosed once the queue is drained.
	Block bool

	mu            sync.Mutex
	cond          *sync.Cond
	keysyms       map[string]display.Keysym
	keycodes      map[display.Keysym]display.Keycode
	failures      map[grabKey]error
	grabs         []Grab
	checks        int
	keyboardGrabs int
	keyboardErr   error
	queue         []queued
	closed        bool
}

// New returns an empty fake display.
func New() *Display {
	d := &Display{
		keysyms:  make(map[string]display.Keysym),
		keycodes: make(map[display.Keysym]display.Keycode),
		failures: make(map[grabKey]error),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// MapKey makes name resolve to sym, and sym to code.
func (d *Display) MapKey(name string, sym display.Keysym, code display.Keycode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keysyms[name] = sym
	d.keycodes[sym] = code
}

// FailGrab makes the grab of code with exactly mods report err.
func (d *Display) FailGrab(code display.Keycode, mods display.ModMask, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[grabKey{code, mods}] = err
}

// FailKeyboardGrab makes GrabKeyboard return err.
func (d *Display) FailKeyboardGrab(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyboardErr = err
}

// Push appends events to the queue read by NextEvent.
func (d *Display) Push(events ...display.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ev := range events {
		d.queue = append(d.queue, queued{ev: ev})
	}
	d.cond.Broadcast()
}

// PushError queues an error to be returned by NextEvent.
func (d *Display) PushError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, queued{err: err})
	d.cond.Broadcast()
}

// Grabs returns the GrabKey calls made so far.
func (d *Display) Grabs() []Grab {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Grab(nil), d.grabs...)
}

// Checks returns how many grab cookies were checked.
func (d *Display) Checks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checks
}

// KeyboardGrabs returns how many times GrabKeyboard was called.
func (d *Display) KeyboardGrabs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keyboardGrabs
}

func (d *Display) GrabKey(code display.Keycode, mods display.ModMask, ownerEvents bool, pointerMode, keyboardMode display.GrabMode) display.GrabCookie {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.grabs = append(d.grabs, Grab{
		Code:         code,
		Mods:         mods,
		OwnerEvents:  ownerEvents,
		PointerMode:  pointerMode,
		KeyboardMode: keyboardMode,
	})
	return &cookie{d: d, err: d.failures[grabKey{code, mods}]}
}

func (d *Display) GrabKeyboard(ownerEvents bool, pointerMode, keyboardMode display.GrabMode, t display.Timestamp) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyboardGrabs++
	return d.keyboardErr
}

func (d *Display) KeysymFromName(name string) (display.Keysym, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sym, ok := d.keysyms[name]; ok {
		return sym, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return display.Keysym(r), nil
	}
	return 0, fmt.Errorf("%w: %q", display.ErrUnknownKey, name)
}

func (d *Display) KeycodeFromKeysym(sym display.Keysym) (display.Keycode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if code, ok := d.keycodes[sym]; ok {
		return code, nil
	}
	if sym < 256 {
		return display.Keycode(sym), nil
	}
	return 0, fmt.Errorf("%w: keysym 0x%x", display.ErrUnknownKey, uint32(sym))
}

func (d *Display) NextEvent() (display.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.queue) == 0 {
		if d.closed || !d.Block {
			return display.Event{}, display.ErrClosed
		}
		d.cond.Wait()
	}
	q := d.queue[0]
	d.queue = d.queue[1:]
	return q.ev, q.err
}

// Close wakes any blocked NextEvent, which then reports display.ErrClosed
// once the queue is empty.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.cond.Broadcast()
	return nil
}

type cookie struct {
	d   *Display
	err error
}

func (c *cookie) Check() error {
	c.d.mu.Lock()
	c.d.checks++
	c.d.mu.Unlock()
	return c.err
}
