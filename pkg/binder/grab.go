package binder

import (
	"errors"
	"fmt"

	"github.com/grovetools/keybind/pkg/display"
	"github.com/grovetools/keybind/pkg/keys"
)

// ErrKeycodeRange is returned for raw keycodes outside 0..255.
var ErrKeycodeRange = errors.New("keycode out of range")

// GrabResult is the outcome of registering one binding.
type GrabResult struct {
	Label  string
	Code   display.Keycode
	Masks  []display.ModMask
	Errors []error // errors reported for this binding's grabs
}

// OK reports whether every grab for the binding succeeded.
func (r GrabResult) OK() bool {
	return len(r.Errors) == 0
}

// Err joins the collected errors, or returns nil.
func (r GrabResult) Err() error {
	return errors.Join(r.Errors...)
}

// Resolve parses the binding key and turns it into a keycode and modifier
// mask without grabbing anything. A key name the server does not know is
// reported in the result; malformed keys are returned as errors.
func (b *KeyBinder) Resolve(key any, defaultModifier string) (keys.Resolved, GrabResult, error) {
	d, err := keys.Parse(key)
	if err != nil {
		return keys.Resolved{}, GrabResult{}, err
	}

	res := GrabResult{Label: d.String()}

	mask, err := keys.ResolveMask(d.Modifiers, defaultModifier)
	if err != nil {
		return keys.Resolved{}, res, fmt.Errorf("key %q: %w", res.Label, err)
	}

	if d.HasCode {
		if d.Code < 0 || d.Code > 255 {
			return keys.Resolved{}, res, fmt.Errorf("key %q: %w", res.Label, ErrKeycodeRange)
		}
		res.Code = display.Keycode(d.Code)
	} else {
		code, err := b.keycode(d.Key)
		if err != nil {
			res.Errors = append(res.Errors, err)
			return keys.Resolved{Label: res.Label, Mask: mask}, res, nil
		}
		res.Code = code
		b.log.Debugf("Key translated: %s -> %d", res.Label, code)
	}

	return keys.Resolved{Label: res.Label, Code: res.Code, Mask: mask}, res, nil
}

func (b *KeyBinder) keycode(name string) (display.Keycode, error) {
	sym, err := b.disp.KeysymFromName(name)
	if err != nil {
		return 0, err
	}
	return b.disp.KeycodeFromKeysym(sym)
}

// RegisterKey grabs the binding's key under every lock-state variant of its
// modifier mask and, when all grabs succeed, maps the keycode to the
// binding's handler.
//
// Grab failures (another client already holds the combination, the key name
// is unknown) are reported through the result. Malformed keys are returned
// as errors.
func (b *KeyBinder) RegisterKey(binding Binding, defaultModifier string) (GrabResult, error) {
	resolved, res, err := b.Resolve(binding.Key, defaultModifier)
	if err != nil || !res.OK() {
		return res, err
	}

	masks := keys.ExpandLocks(resolved.Mask)
	cookies := make([]display.GrabCookie, 0, len(masks))
	for _, mask := range masks {
		res.Masks = append(res.Masks, mask)
		cookies = append(cookies, b.disp.GrabKey(res.Code, mask, true, display.GrabModeAsync, display.GrabModeAsync))
	}

	// One check per issued grab; every reply is in before deciding.
	for i, c := range cookies {
		if err := c.Check(); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("grab %s with %s: %w", res.Label, keys.MaskString(masks[i]), err))
		}
	}

	if !res.OK() {
		return res, nil
	}

	if prev, ok := b.mapped[res.Code]; ok && prev.label != res.Label {
		b.log.Warnf("Keycode %d of %s was bound to %s, replacing", res.Code, res.Label, prev.label)
	}
	b.mapped[res.Code] = entry{label: res.Label, handler: binding.Handler}
	return res, nil
}

// RegisterAll registers every binding of the keymap in order. Bindings that
// fail to grab are logged and skipped; a malformed key stops registration
// and is returned.
func (b *KeyBinder) RegisterAll() ([]GrabResult, error) {
	results := make([]GrabResult, 0, len(b.keymap))
	for _, binding := range b.keymap {
		res, err := b.RegisterKey(binding, b.defaultModifier)
		if err != nil {
			return results, err
		}
		if !res.OK() {
			b.log.WithError(res.Err()).Warnf("Unable to register handler for: %s", res.Label)
		}
		results = append(results, res)
	}
	return results, nil
}

// Sniff grabs the whole keyboard so every key press is reported. Used to
// discover key codes; nothing is mapped.
func (b *KeyBinder) Sniff() error {
	if err := b.disp.GrabKeyboard(true, display.GrabModeAsync, display.GrabModeAsync, display.CurrentTime); err != nil {
		return fmt.Errorf("sniff: %w", err)
	}
	b.log.Info("Sniffing all keys")
	return nil
}
