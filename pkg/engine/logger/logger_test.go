package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lantern.log")
	s := NewService(path)

	s.Info("loaded %d sources", 2)
	s.Debug("hidden at info level")
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO  - logger_test.go:")
	assert.Contains(t, string(data), "loaded 2 sources")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestService_ConsoleMirrorAndLevel(t *testing.T) {
	var buf bytes.Buffer
	s := NewService("")
	s.SetConsoleOutput(&buf)
	s.SetLevel(LevelDebug)

	s.Debug("request %s", "GET")
	s.SetLevel(LevelError)
	s.Warn("dropped")

	assert.Contains(t, buf.String(), "DEBUG - ")
	assert.Contains(t, buf.String(), "request GET")
	assert.NotContains(t, buf.String(), "dropped")
}
