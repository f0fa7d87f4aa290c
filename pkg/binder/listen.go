package binder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/grovetools/keybind/pkg/display"
)

// Listen runs the event loop. It has no exit of its own: it returns only
// when the display fails to deliver the next event.
func (b *KeyBinder) Listen() error {
	for {
		ev, err := b.disp.NextEvent()
		if err != nil {
			var perr *display.ProtocolError
			if errors.As(err, &perr) {
				b.log.WithError(perr.Err).Warn("X server reported an error")
				continue
			}
			return fmt.Errorf("event loop stopped: %w", err)
		}

		if ev.Type&b.events == 0 {
			continue
		}

		e, ok := b.mapped[ev.Detail]
		if !ok {
			e = entry{label: strconv.Itoa(int(ev.Detail))}
		}

		if e.handler != nil {
			e.handler()
			continue
		}
		b.log.Infof("Intercepted key: %s", e.label)
	}
}

// RunBackground runs Listen on its own goroutine. Call it at most once,
// after registration. The goroutine does not keep the process alive.
func (b *KeyBinder) RunBackground() {
	b.once.Do(func() {
		b.done = make(chan struct{})
		go func() {
			b.err = b.Listen()
			b.log.WithError(b.err).Error("Key listener stopped")
			close(b.done)
		}()
	})
}

// Wait blocks until the background listener stops and returns its error.
// Every call returns the same error. It returns nil immediately when
// RunBackground was never called.
func (b *KeyBinder) Wait() error {
	if b.done == nil {
		return nil
	}
	<-b.done
	return b.err
}
