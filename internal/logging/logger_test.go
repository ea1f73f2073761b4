package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewLogger_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	l, err := NewLogger(dir, "debug")
	require.NoError(t, err)

	l.Debug("split", "orientation", "horizontal")
	l.WithWindow("7").Info("initialized")
	require.NoError(t, l.Close())

	lines := readLines(t, filepath.Join(dir, FileName))
	require.Len(t, lines, 2)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "split", lines[0]["msg"])
	assert.Equal(t, "horizontal", lines[0]["orientation"])
	assert.Equal(t, "7", lines[1]["window_id"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, LevelWarn)
	require.NoError(t, err)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	require.NoError(t, l.Close())

	lines := readLines(t, filepath.Join(dir, FileName))
	require.Len(t, lines, 2)
	assert.Equal(t, "w", lines[0]["msg"])
	assert.Equal(t, "e", lines[1]["msg"])
}

func TestNewLogger_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slogLevel("verbose")}))
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith_ChildSharesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, LevelInfo)
	require.NoError(t, err)

	child := l.WithComponent("workspace").With("tree_windows", 3)
	child.Info("layout changed")
	require.NoError(t, child.Close())
	require.NoError(t, l.Close())

	lines := readLines(t, filepath.Join(dir, FileName))
	require.Len(t, lines, 1)
	assert.Equal(t, "workspace", lines[0]["component"])
	assert.EqualValues(t, 3, lines[0]["tree_windows"])
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Error("dropped")
	assert.NoError(t, l.Close())

	var nilLogger *Logger
	nilLogger.Info("no panic")
	assert.NoError(t, nilLogger.Close())
}

func TestValidLevel(t *testing.T) {
	for _, name := range ValidLevels() {
		assert.True(t, ValidLevel(name), name)
		assert.True(t, ValidLevel(strings.ToLower(name)), name)
	}
	assert.False(t, ValidLevel("trace"))
}
