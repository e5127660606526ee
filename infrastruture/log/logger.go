// Package log provides prefixed, colour-tagged loggers backed by logrus.
package log

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

var (
	ErrNilWriter   = errors.New("logger output writer is nil")
	ErrEmptyPrefix = errors.New("logger prefix is empty")
)

// Logger writes lines of the form "<colour>[PREFIX]<reset> [LEVEL] message".
type Logger struct {
	entry *logrus.Logger
}

// prefixFormatter renders logrus entries in the prefix/colour layout.
type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if f.color != "" {
		fmt.Fprintf(&b, "%s[%s]%s", f.color, f.prefix, colorReset)
	} else {
		fmt.Fprintf(&b, "[%s]", f.prefix)
	}
	fmt.Fprintf(&b, " [%s] %s", strings.ToUpper(e.Level.String()), e.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New creates a logger that tags every line with prefix in the given ANSI colour.
// An empty colour writes the prefix without escape codes. The level starts at info.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, ErrNilWriter
	}
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	l.SetLevel(logrus.InfoLevel)

	return &Logger{entry: l}, nil
}

// SetLevel changes the minimum level written, e.g. "debug" or "warn".
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	l.entry.SetLevel(lvl)
	return nil
}

// DebugEnabled reports whether Debug messages are written.
func (l *Logger) DebugEnabled() bool {
	return l.entry.IsLevelEnabled(logrus.DebugLevel)
}

func (l *Logger) Debug(message string) {
	l.entry.Debug(message)
}

func (l *Logger) Info(message string) {
	l.entry.Info(message)
}

func (l *Logger) Warn(message string) {
	l.entry.Warn(message)
}

func (l *Logger) Error(message string) {
	l.entry.Error(message)
}
