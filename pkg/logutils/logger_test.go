package logutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "touchgate.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("info", path, nil)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
	assert.Contains(t, string(data), `"message":"second"`)
}

func TestNew_Level(t *testing.T) {
	l, closer, err := New("warn", "", nil)
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New("debug", Console, &buf)
	require.NoError(t, err)
	defer closer()

	l.Debug().Str("dialog_id", "abc").Msg("dialog created")
	assert.Contains(t, buf.String(), "dialog created")
	assert.Contains(t, buf.String(), "dialog_id=abc")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "", nil)
	assert.Error(t, err)
}
