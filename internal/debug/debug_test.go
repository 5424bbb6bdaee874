package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	t.Cleanup(Close)
	require.NoError(t, Init(false, ""))
	require.False(t, Enabled())

	Logger("test").Info("dropped")
}

func TestInitEnabledWritesFile(t *testing.T) {
	t.Cleanup(Close)
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	require.NoError(t, Init(true, path))
	require.True(t, Enabled())
	Logger("dispatcher").Debug("intent", "intent", "select")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "debug log started")
	require.Contains(t, string(data), "component=dispatcher")
	require.Contains(t, string(data), "intent=select")
}

func TestInitTruncates(t *testing.T) {
	t.Cleanup(Close)
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("stale line\n"), 0o600))

	require.NoError(t, Init(true, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "stale line")
}
