// Package binder grabs key combinations on the X root window and dispatches
// the matching key events to handlers.
//
//	b, err := binder.Activate(disp, binder.Options{
//		Keymap: []binder.Binding{
//			{Key: "Ctrl-K", Handler: func() { fmt.Println("pressed") }},
//			{Key: "1"}, // intercept only
//		},
//	}, false)
package binder

import (
	"errors"
	"sync"

	"github.com/grovetools/core/logging"
	"github.com/grovetools/keybind/pkg/display"
	"github.com/grovetools/keybind/pkg/keys"
	"github.com/sirupsen/logrus"
)

// Handler is invoked on the event loop when its key is pressed. It blocks
// the loop while it runs.
type Handler func()

// Binding pairs a key with a handler. Key is a descriptor string such as
// "Ctrl-Alt-J", a raw keycode int, or a keys.Descriptor. A nil Handler
// intercepts the key and only logs it.
type Binding struct {
	Key     any
	Handler Handler
}

// Options configures a KeyBinder.
type Options struct {
	Keymap          []Binding
	ListenEvents    display.EventMask  // Defaults to display.KeyPressMask
	DefaultModifier string             // Defaults to keys.DefaultModifier
	Logger          logrus.FieldLogger // Defaults to the "binder" component logger
}

// ErrNoDisplay is returned by New when no display connection is given.
var ErrNoDisplay = errors.New("no display connection")

type entry struct {
	label   string
	handler Handler
}

// KeyBinder owns a display connection and the keycode to handler table
// built from its keymap.
type KeyBinder struct {
	disp            display.Display
	events          display.EventMask
	keymap          []Binding
	defaultModifier string
	log             logrus.FieldLogger

	// written during registration only, read-only once listening
	mapped map[display.Keycode]entry

	once sync.Once
	done chan struct{} // closed once the background listener returns
	err  error         // set before done is closed
}

// New returns a binder for disp. Nothing is grabbed until RegisterAll,
// RegisterKey or Sniff is called.
func New(disp display.Display, opts Options) (*KeyBinder, error) {
	if disp == nil {
		return nil, ErrNoDisplay
	}

	b := &KeyBinder{
		disp:            disp,
		events:          opts.ListenEvents,
		keymap:          opts.Keymap,
		defaultModifier: opts.DefaultModifier,
		log:             opts.Logger,
		mapped:          make(map[display.Keycode]entry),
	}
	if b.events == 0 {
		b.events = display.KeyPressMask
	}
	if b.defaultModifier == "" {
		b.defaultModifier = keys.DefaultModifier
	}
	if b.log == nil {
		b.log = logging.NewLogger("binder")
	}
	return b, nil
}

// Activate builds a binder, registers the keymap (or sniffs the whole
// keyboard when the keymap is empty) and starts listening. With background
// set it returns as soon as the listener goroutine is started; otherwise it
// only returns once the event loop fails.
func Activate(disp display.Display, opts Options, background bool) (*KeyBinder, error) {
	b, err := New(disp, opts)
	if err != nil {
		return nil, err
	}

	if len(b.keymap) > 0 {
		if _, err := b.RegisterAll(); err != nil {
			return nil, err
		}
	} else if err := b.Sniff(); err != nil {
		return nil, err
	}

	// Registration has returned; the table is not written again.
	if background {
		b.RunBackground()
		return b, nil
	}
	return b, b.Listen()
}

// Mapped returns the label registered for code.
func (b *KeyBinder) Mapped(code display.Keycode) (string, bool) {
	e, ok := b.mapped[code]
	return e.label, ok
}
