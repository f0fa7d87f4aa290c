package keys

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKeyType is returned when a key is neither a string, an int nor
// a Descriptor.
var ErrInvalidKeyType = errors.New("invalid key type")

// Parse turns a key reference into a Descriptor.
//
// Supported inputs:
//   - string: "-" separated modifier names followed by the base key,
//     "Ctrl-Alt-J" -> (["Ctrl", "Alt"], "J"), "J" -> ([], "J")
//   - int: a raw keycode, returned without decomposition
//   - Descriptor: returned unchanged
func Parse(input any) (Descriptor, error) {
	switch v := input.(type) {
	case string:
		return ParseString(v), nil
	case int:
		return Descriptor{Code: v, HasCode: true}, nil
	case Descriptor:
		return v, nil
	default:
		return Descriptor{}, fmt.Errorf("%w: %T", ErrInvalidKeyType, input)
	}
}

// ParseString splits s on every "-". The empty string yields an empty
// descriptor rather than an error.
func ParseString(s string) Descriptor {
	parts := strings.Split(s, "-")
	last := len(parts) - 1
	return Descriptor{
		Modifiers: append([]string{}, parts[:last]...),
		Key:       parts[last],
	}
}
