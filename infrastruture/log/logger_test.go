package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Rejects missing writer or prefix", func(t *testing.T) {
		_, err := New("APP", "", nil)
		assert.ErrorIs(t, err, ErrNilWriter)

		_, err = New("", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyPrefix)
	})

	t.Run("Plain prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "", &buf)
		require.NoError(t, err)

		l.Info("server started")
		l.Error("boom")
		assert.Equal(t, "[APP] [INFO] server started\n[APP] [ERROR] boom\n", buf.String())
	})

	t.Run("Coloured prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("CACHE", "\033[36m", &buf)
		require.NoError(t, err)

		l.Warn("miss")
		assert.Equal(t, "\033[36m[CACHE]\033[0m [WARNING] miss\n", buf.String())
	})

	t.Run("Debug is filtered until enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "", &buf)
		require.NoError(t, err)

		l.Debug("hidden")
		assert.Empty(t, buf.String())
		assert.False(t, l.DebugEnabled())

		require.NoError(t, l.SetLevel("debug"))
		assert.True(t, l.DebugEnabled())
		l.Debug("shown")
		assert.True(t, strings.HasSuffix(buf.String(), "[DEBUG] shown\n"))
	})

	t.Run("Unknown level", func(t *testing.T) {
		l, err := New("APP", "", &bytes.Buffer{})
		require.NoError(t, err)
		assert.Error(t, l.SetLevel("loud"))
	})
}
