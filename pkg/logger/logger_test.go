package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	t.Setenv(DebugEnv, "")
	t.Setenv("DEBUG", "")

	t.Run("InfoByDefault", func(t *testing.T) {
		var buf bytes.Buffer
		log := Configure(logrus.New(), Options{Output: &buf})

		log.Debug("hidden")
		log.Info("Intercepted key: 10")

		assert.Equal(t, "INFO: Intercepted key: 10\n", buf.String())
	})

	t.Run("DebugOption", func(t *testing.T) {
		var buf bytes.Buffer
		log := Configure(logrus.New(), Options{Debug: true, Output: &buf})
		assert.Equal(t, logrus.DebugLevel, log.GetLevel())

		log.Debugf("Key translated: %s -> %d", "J", 44)
		assert.Equal(t, "DEBUG: Key translated: J -> 44\n", buf.String())
	})

	t.Run("DebugEnv", func(t *testing.T) {
		t.Setenv(DebugEnv, "true")
		log := Configure(logrus.New(), Options{Output: &bytes.Buffer{}})
		assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	})

	t.Run("KeepsDebugLevel", func(t *testing.T) {
		base := logrus.New()
		base.SetLevel(logrus.DebugLevel)
		log := Configure(base, Options{Output: &bytes.Buffer{}})
		assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	})

	t.Run("WarnBecomesInfo", func(t *testing.T) {
		base := logrus.New()
		base.SetLevel(logrus.WarnLevel)
		log := Configure(base, Options{Output: &bytes.Buffer{}})
		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	})

	t.Run("BufferIsNotATerminal", func(t *testing.T) {
		log := Configure(logrus.New(), Options{Output: &bytes.Buffer{}})
		assert.False(t, log.Formatter.(*Formatter).Color)
	})
}

func TestFormatterFields(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(logrus.New(), Options{Output: &buf})

	log.WithError(errors.New("BadAccess")).WithField("key", "Ctrl-K").Warn("Unable to register handler for: Ctrl-K")

	assert.Equal(t, "WARN: Unable to register handler for: Ctrl-K error=BadAccess key=Ctrl-K\n", buf.String())
}
