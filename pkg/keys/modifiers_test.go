package keys_test

import (
	"testing"

	"github.com/grovetools/keybind/pkg/display"
	"github.com/grovetools/keybind/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMask(t *testing.T) {
	t.Run("DefaultWhenNoModifiers", func(t *testing.T) {
		mask, err := keys.ResolveMask(nil, "NumLock")
		require.NoError(t, err)
		assert.Equal(t, display.Mod2, mask)
	})

	t.Run("ExplicitOverridesDefault", func(t *testing.T) {
		mask, err := keys.ResolveMask([]string{"Ctrl"}, "Super")
		require.NoError(t, err)
		assert.Equal(t, display.ModControl, mask)
	})

	t.Run("ChainIsCombined", func(t *testing.T) {
		mask, err := keys.ResolveMask([]string{"Ctrl", "Alt", "Shift"}, keys.DefaultModifier)
		require.NoError(t, err)
		assert.Equal(t, display.ModControl|display.Mod1|display.ModShift, mask)
	})

	t.Run("UnknownModifier", func(t *testing.T) {
		_, err := keys.ResolveMask([]string{"Hyper"}, keys.DefaultModifier)
		assert.ErrorIs(t, err, keys.ErrUnknownModifier)
		assert.Contains(t, err.Error(), "Hyper")
	})

	t.Run("UnknownDefault", func(t *testing.T) {
		_, err := keys.ResolveMask(nil, "ctrl")
		assert.ErrorIs(t, err, keys.ErrUnknownModifier)
	})
}

func TestExpandLocks(t *testing.T) {
	for _, name := range keys.ModifierNames() {
		m, ok := keys.ModifierMask(name)
		require.True(t, ok)
		t.Run(name, func(t *testing.T) {
			got := keys.ExpandLocks(m)
			assert.Equal(t, [4]display.ModMask{
				m,
				m | display.Mod2,
				m | display.ModLock,
				m | display.Mod2 | display.ModLock,
			}, got)
		})
	}
}

func TestModifierTableIsNotShared(t *testing.T) {
	names := keys.ModifierNames()
	require.Equal(t, []string{"Ctrl", "Shift", "Alt", "Super", "CapsLock", "NumLock"}, names)
	names[5] = "Ctrl"

	mask, ok := keys.ModifierMask("NumLock")
	require.True(t, ok)
	assert.Equal(t, display.Mod2, mask)
	assert.Equal(t, [4]display.ModMask{0, display.Mod2, display.ModLock, display.Mod2 | display.ModLock}, keys.ExpandLocks(0))
	assert.Equal(t, "NumLock", keys.ModifierNames()[5])

	_, ok = keys.ModifierMask("numlock")
	assert.False(t, ok)
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "Ctrl+Alt", keys.MaskString(display.ModControl|display.Mod1))
	assert.Equal(t, "NumLock", keys.MaskString(display.Mod2))
	assert.Equal(t, "none", keys.MaskString(0))
}
