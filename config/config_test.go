package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvHelpers(t *testing.T) {
	t.Run("String default", func(t *testing.T) {
		assert.Equal(t, "fallback", getEnvWithDefault("VINOM_MAZE_UNSET_KEY", "fallback"))

		t.Setenv("VINOM_MAZE_TEST_KEY", "set")
		assert.Equal(t, "set", getEnvWithDefault("VINOM_MAZE_TEST_KEY", "fallback"))
	})

	t.Run("Int default", func(t *testing.T) {
		assert.Equal(t, 25, getEnvAsIntWithDefault("VINOM_MAZE_UNSET_KEY", 25))

		t.Setenv("VINOM_MAZE_TEST_INT", "")
		assert.Equal(t, 25, getEnvAsIntWithDefault("VINOM_MAZE_TEST_INT", 25))

		t.Setenv("VINOM_MAZE_TEST_INT", "40")
		assert.Equal(t, 40, getEnvAsIntWithDefault("VINOM_MAZE_TEST_INT", 25))
	})

	t.Run("Config picks up environment", func(t *testing.T) {
		t.Setenv("MAZE_WIDTH", "12")
		t.Setenv("REDIS_ADDR", "localhost:6379")

		c := initConfig()
		assert.Equal(t, 12, c.MazeWidth)
		assert.Equal(t, "localhost:6379", c.RedisAddr)
		assert.Equal(t, "vinom-maze", c.JWTIssuer)
	})
}

func TestProfile(t *testing.T) {
	t.Run("Parses every field", func(t *testing.T) {
		p, err := ParseProfile([]byte(`
width: 40
height: 30
cell_size: 12
seed: 99
output: out.png
wall_color: navy
background: white
stroke_width: 2.5
`))
		require.NoError(t, err)
		assert.Equal(t, &Profile{
			Width:       40,
			Height:      30,
			CellSize:    12,
			Seed:        99,
			Output:      "out.png",
			WallColor:   "navy",
			Background:  "white",
			StrokeWidth: 2.5,
		}, p)
	})

	t.Run("Rejects unknown keys", func(t *testing.T) {
		_, err := ParseProfile([]byte("depth: 3\n"))
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("Rejects negative sizes", func(t *testing.T) {
		_, err := ParseProfile([]byte("width: -1\n"))
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("Loads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maze.yaml")
		require.NoError(t, os.WriteFile(path, []byte("width: 7\n"), 0o600))

		p, err := LoadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, 7, p.Width)

		_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestCheckSecret(t *testing.T) {
	assert.ErrorIs(t, CheckSecret(""), ErrWeakSecret)
	assert.ErrorIs(t, CheckSecret("password"), ErrWeakSecret)
	assert.NoError(t, CheckSecret("q8#Lm2!vZr9@Tx4&Wp7k"))
}
