// Package logger sets up the output format of keybind's logrus loggers.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug output when set to "true".
const DebugEnv = "KEYBIND_DEBUG"

// Options configures Configure.
type Options struct {
	Debug  bool      // Log at debug level
	Output io.Writer // Defaults to os.Stderr
}

// DebugFromEnv reports whether KEYBIND_DEBUG or DEBUG is "true".
func DebugFromEnv() bool {
	return os.Getenv(DebugEnv) == "true" || os.Getenv("DEBUG") == "true"
}

// Configure makes log write "LEVEL: message" lines to the output. Levels are
// coloured only when the output is a terminal. A logger already at debug
// level stays there.
func Configure(log *logrus.Logger, opts Options) *logrus.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	debug := opts.Debug || DebugFromEnv() || log.IsLevelEnabled(logrus.DebugLevel)

	log.SetOutput(out)
	log.SetFormatter(&Formatter{Color: isTerminal(out)})
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Formatter renders entries as "INFO: message key=value".
type Formatter struct {
	Color bool
}

var levelColors = map[logrus.Level]int{
	logrus.DebugLevel: 37,
	logrus.InfoLevel:  36,
	logrus.WarnLevel:  33,
	logrus.ErrorLevel: 31,
	logrus.FatalLevel: 31,
	logrus.PanicLevel: 31,
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := strings.ToUpper(entry.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}
	if f.Color {
		fmt.Fprintf(&b, "\x1b[%dm%s\x1b[0m: %s", levelColors[entry.Level], level, entry.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", level, entry.Message)
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
