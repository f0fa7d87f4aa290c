package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/keybind/pkg/display"
	"github.com/grovetools/keybind/pkg/display/displaytest"
	"github.com/grovetools/keybind/pkg/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against disp and returns stdout and stderr.
func execute(t *testing.T, disp display.Display, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("KEYBIND_DEBUG", "")
	t.Setenv("DEBUG", "")

	orig := openDisplay
	openDisplay = func(string) (display.Display, error) {
		if disp == nil {
			return nil, errors.New("cannot open display")
		}
		return disp, nil
	}
	t.Cleanup(func() { openDisplay = orig })

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, nil, "--version")
	require.NoError(t, err)
	assert.Equal(t, "keybind v0.3.0\n", out)
}

func TestVersionString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2"
	assert.Equal(t, "v1.2.0", versionString())

	Version = "dev-build"
	assert.Equal(t, "dev-build", versionString())
}

func TestBind(t *testing.T) {
	t.Run("InterceptOnly", func(t *testing.T) {
		disp := displaytest.New()
		disp.Push(display.Event{Type: display.KeyPressMask, Detail: 'J'})

		_, stderr, err := execute(t, disp, "-k", "J=")
		assert.ErrorIs(t, err, display.ErrClosed)
		assert.Contains(t, stderr, "INFO: Intercepted key: J")
		assert.Len(t, disp.Grabs(), 4)
	})

	t.Run("RunsCommand", func(t *testing.T) {
		disp := displaytest.New()
		disp.Push(display.Event{Type: display.KeyPressMask, Detail: 38})

		stdout, _, err := execute(t, disp, "-k", "38=echo fired", "-k", "Ctrl-K=")
		assert.ErrorIs(t, err, display.ErrClosed)
		assert.Equal(t, "fired\n", stdout)
		assert.Len(t, disp.Grabs(), 8)
	})

	t.Run("FileThenFlags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keybind.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bindings:\n  - key: Super-L\n"), 0644))

		disp := displaytest.New()
		_, _, err := execute(t, disp, "-f", path, "-k", "J=")
		assert.ErrorIs(t, err, display.ErrClosed)

		grabs := disp.Grabs()
		require.Len(t, grabs, 8)
		assert.Equal(t, display.Keycode('L'), grabs[0].Code)
		assert.Equal(t, display.Mod4, grabs[0].Mods)
		assert.Equal(t, display.Keycode('J'), grabs[4].Code)
	})

	t.Run("Sniff", func(t *testing.T) {
		disp := displaytest.New()
		disp.Push(display.Event{Type: display.KeyPressMask, Detail: 64})

		_, stderr, err := execute(t, disp, "--sniff", "-k", "J=")
		assert.ErrorIs(t, err, display.ErrClosed)
		assert.Equal(t, 1, disp.KeyboardGrabs())
		assert.Empty(t, disp.Grabs())
		assert.Contains(t, stderr, "Intercepted key: 64")
	})

	t.Run("DisplayFailureIsFatal", func(t *testing.T) {
		_, _, err := execute(t, nil, "-k", "J=")
		assert.EqualError(t, err, "cannot open display")
	})

	t.Run("BadRule", func(t *testing.T) {
		_, _, err := execute(t, displaytest.New(), "-k", "=xterm")
		assert.ErrorContains(t, err, keymap.ErrEmptyKey.Error())
	})

	t.Run("NoBindingsShowsHelp", func(t *testing.T) {
		disp := displaytest.New()
		stdout, _, err := execute(t, disp)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Bind global key combinations to shell commands")
		assert.Empty(t, disp.Grabs())
	})

	t.Run("Debug", func(t *testing.T) {
		disp := displaytest.New()
		_, stderr, _ := execute(t, disp, "--debug", "-k", "J=")
		assert.Contains(t, stderr, "DEBUG: Key translated: J -> 74")
	})
}

func TestDump(t *testing.T) {
	out, _, err := execute(t, nil, "dump", "--format", "yaml", "-k", "Ctrl-Alt-T=xterm", "-k", "38=")
	require.NoError(t, err)

	f, err := keymap.Decode([]byte(out), keymap.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []keymap.Rule{{Key: "Ctrl-Alt-T", Command: "xterm"}, {Key: "38"}}, f.Bindings)

	_, _, err = execute(t, nil, "dump")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, _, err := execute(t, nil, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"bindings"`)
	assert.Contains(t, out, `"command"`)
	assert.Contains(t, out, "keybind bindings")
}

func TestCheck(t *testing.T) {
	t.Run("AllResolve", func(t *testing.T) {
		disp := displaytest.New()
		out, _, err := execute(t, disp, "check", "-k", "Ctrl-K=xterm", "-k", "J=")
		require.NoError(t, err)
		assert.Contains(t, out, "Ctrl-K")
		assert.Contains(t, out, "75")
		assert.Contains(t, out, "xterm")
		assert.Empty(t, disp.Grabs())
	})

	t.Run("SharedKeycodeWarns", func(t *testing.T) {
		out, _, err := execute(t, displaytest.New(), "check", "-k", "Ctrl-K=a", "-k", "K=b")
		require.NoError(t, err)
		assert.Contains(t, out, "keycode 75 is shared by Ctrl-K, K")
	})

	t.Run("ExactConflictFails", func(t *testing.T) {
		out, _, err := execute(t, displaytest.New(), "check", "-k", "K=a", "-k", "75=b")
		assert.EqualError(t, err, "conflicting bindings")
		assert.Contains(t, out, "keycode 75 with NumLock is claimed by K, 75")
	})

	t.Run("LockVariantsOverlap", func(t *testing.T) {
		out, _, err := execute(t, displaytest.New(), "check", "-k", "CapsLock-K=a", "-k", "K=b")
		assert.EqualError(t, err, "conflicting bindings")
		assert.Contains(t, out, "keycode 75 with CapsLock+NumLock is claimed by CapsLock-K, K")
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, _, err := execute(t, displaytest.New(), "check", "-k", "NoSuchKey=a")
		assert.EqualError(t, err, "1 of 1 bindings cannot be registered")
	})

	t.Run("UnknownModifier", func(t *testing.T) {
		_, _, err := execute(t, displaytest.New(), "check", "-k", "Hyper-K=a")
		assert.Error(t, err)
	})
}

func TestWriteCheckJSON(t *testing.T) {
	var buf bytes.Buffer
	mask := "NumLock"
	require.NoError(t, writeCheckJSON(&buf, checkReport{
		Bindings: []checkEntry{
			{Key: "K", Keycode: 75, Modifiers: mask, Command: "xterm"},
			{Key: "NoSuchKey", Modifiers: mask, Error: "unknown key"},
		},
		Conflicts: []checkConflict{{Keycode: 75, Keys: []string{"K", "75"}}},
	}))

	var got struct {
		Bindings  []map[string]any `json:"bindings"`
		Conflicts []map[string]any `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Bindings, 2)
	assert.Equal(t, float64(75), got.Bindings[0]["keycode"])
	assert.Equal(t, "xterm", got.Bindings[0]["command"])
	assert.Equal(t, "unknown key", got.Bindings[1]["error"])
	require.Len(t, got.Conflicts, 1)
	assert.NotContains(t, got.Conflicts[0], "modifiers")
}
