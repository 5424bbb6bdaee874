package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "todo/internal/errors"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "store_path")
	require.Contains(t, string(data), DefaultStoreName)
	require.Contains(t, string(data), "[keys]")
}

func TestLoadOrCreateReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
backend = "sqlite"
db_path = "/tmp/todos.db"

[keys]
quit = "x"
`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Backend)
	require.Equal(t, "/tmp/todos.db", cfg.StoreLocation())
	require.Equal(t, "x", cfg.Keys.Quit)
	require.Equal(t, "a", cfg.Keys.Add, "unset keys keep defaults")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("store_path = \"file.json\"\n"), 0o644))

	t.Setenv("TODO_STORE_PATH", "env.json")
	t.Setenv("TODO_DEBUG", "true")
	t.Setenv("TODO_KEYS_ADD", "n")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, "env.json", cfg.StorePath)
	require.True(t, cfg.Debug)
	require.Equal(t, "n", cfg.Keys.Add)
}

func TestInvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("backend = \"redis\"\n"), 0o644))

	_, err := LoadOrCreate(path)
	require.True(t, appErrors.IsCode(err, appErrors.CodeConfigurationError), "got %v", err)
}

func TestNormalizeBackend(t *testing.T) {
	cfg, err := Normalize(Config{Backend: " SQLite "})
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Backend)
	require.Equal(t, DefaultStoreName, cfg.StorePath)
	require.Equal(t, DefaultDBName, cfg.DBPath)

	_, err = Normalize(Config{Backend: "postgres"})
	require.True(t, appErrors.IsCode(err, appErrors.CodeConfigurationError), "got %v", err)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("backend = "), 0o644))

	_, err := LoadOrCreate(path)
	require.Error(t, err)
}

func TestResolveConfigPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/todo.toml")
	require.Equal(t, "/etc/todo.toml", ResolveConfigPath())
}
