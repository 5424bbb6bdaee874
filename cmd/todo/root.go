package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todo/internal/config"
	"todo/internal/debug"
	"todo/internal/storage"
	"todo/internal/todo"
	"todo/internal/ui"
)

type app struct {
	configPath string
	backend    string
	storePath  string
	debug      bool

	cfg   config.Config
	store storage.Backend
	disp  *todo.Dispatcher
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Single-window todo list editor",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  todo

  # Scriptable commands
  todo add "buy milk"
  todo list
  todo toggle 6f1c2a4e
  todo clear
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.disp, a.cfg)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsStore(cmd) {
				return nil
			}
			return a.open()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config.toml (default: $TODO_CONFIG or the user config dir)")
	cmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend (json|sqlite)")
	cmd.PersistentFlags().StringVar(&a.storePath, "file", "", "Path to the todo file or database")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Write a debug log")

	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newToggleCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newClearCmd(a))

	return cmd
}

// open loads config, applies flag overrides and builds the dispatcher.
func (a *app) open() error {
	path := a.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.backend != "" {
		cfg.Backend = a.backend
		if cfg, err = config.Normalize(cfg); err != nil {
			return err
		}
	}
	if a.storePath != "" {
		if cfg.Backend == storage.BackendSQLite {
			cfg.DBPath = a.storePath
		} else {
			cfg.StorePath = a.storePath
		}
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg

	if err := debug.Init(cfg.Debug, cfg.LogPath); err != nil {
		return err
	}
	store, err := storage.Open(cfg.Backend, cfg.StoreLocation())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = store
	a.disp = todo.NewDispatcher(store, todo.WithLogger(debug.Logger("dispatcher")))
	debug.Logger("main").Info("store opened", "backend", cfg.Backend, "path", cfg.StoreLocation(), "items", a.disp.State().Len())
	return nil
}

// execute runs cmd and releases the store and log file however it ends.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	return errors.Join(err, a.close())
}

func (a *app) close() error {
	defer debug.Close()
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// skipsStore reports whether cmd is one of cobra's built-in help or
// completion commands, which must not create config or store files.
func skipsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}
