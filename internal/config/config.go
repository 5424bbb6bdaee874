package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	appErrors "todo/internal/errors"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultStoreName      = "todos.json"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "debug.log"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TODO_CONFIG"
	envPrefix     = "TODO"
)

type Keymap struct {
	Quit           string `toml:"quit" mapstructure:"quit"`
	Add            string `toml:"add" mapstructure:"add"`
	Up             string `toml:"up" mapstructure:"up"`
	Down           string `toml:"down" mapstructure:"down"`
	Toggle         string `toml:"toggle" mapstructure:"toggle"`
	Edit           string `toml:"edit" mapstructure:"edit"`
	Rename         string `toml:"rename" mapstructure:"rename"`
	Confirm        string `toml:"confirm" mapstructure:"confirm"`
	Cancel         string `toml:"cancel" mapstructure:"cancel"`
	ClearCompleted string `toml:"clear_completed" mapstructure:"clear_completed"`
	Reload         string `toml:"reload" mapstructure:"reload"`
	Save           string `toml:"save" mapstructure:"save"`
}

type Config struct {
	StorePath string `toml:"store_path" mapstructure:"store_path"`
	Backend   string `toml:"backend" mapstructure:"backend"`
	DBPath    string `toml:"db_path" mapstructure:"db_path"`
	Debug     bool   `toml:"debug" mapstructure:"debug"`
	LogPath   string `toml:"log_path" mapstructure:"log_path"`
	Keys      Keymap `toml:"keys" mapstructure:"keys"`
}

// StoreLocation returns the path the selected backend persists to.
func (c Config) StoreLocation() string {
	if strings.EqualFold(c.Backend, "sqlite") {
		return c.DBPath
	}
	return c.StorePath
}

// ResolveConfigPath picks $TODO_CONFIG, then the user config directory, then
// the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "todo", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if it does not exist. TODO_* environment variables override file values,
// e.g. TODO_BACKEND or TODO_KEYS_QUIT.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	v, err := newViper(cfg)
	if err != nil {
		return cfg, err
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return Normalize(cfg)
}

// newViper seeds a viper instance with the defaults so every key is known
// to AutomaticEnv.
func newViper(defaults Config) (*viper.Viper, error) {
	base, err := toml.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Normalize canonicalises the backend name and fills empty paths.
func Normalize(cfg Config) (Config, error) {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case "":
		cfg.Backend = "json"
	case "json", "sqlite":
	default:
		return cfg, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("backend must be json or sqlite, got %q", cfg.Backend), nil)
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStoreName
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		StorePath: DefaultStoreName,
		Backend:   "json",
		DBPath:    DefaultDBName,
		LogPath:   DefaultLogName,
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Edit:           "e",
			Rename:         "r",
			Confirm:        "enter",
			Cancel:         "esc",
			ClearCompleted: "c",
			Reload:         "ctrl+r",
			Save:           "s",
		},
	}
}
