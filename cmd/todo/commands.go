package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	appErrors "todo/internal/errors"
	"todo/internal/todo"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo at the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("text cannot be empty")
			}
			if err := dispatchAll(a.disp, todo.SetDraft(text), todo.Add(text)); err != nil {
				return err
			}
			it := a.disp.State().Items()[0]
			fmt.Fprintln(cmd.OutOrStdout(), it.ID())
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print todos, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writeList(cmd.OutOrStdout(), a.disp.State())
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a todo between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(a.disp.State(), args[0])
			if err != nil {
				return err
			}
			return dispatchAll(a.disp, todo.ToggleDone(id))
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a todo's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(a.disp.State(), args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			return dispatchAll(a.disp, todo.Select(id), todo.SetText(id, text), todo.Confirm(id))
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			before := a.disp.State().Len()
			if err := dispatchAll(a.disp, todo.ClearCompleted()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", before-a.disp.State().Len())
			return nil
		},
	}
}

func dispatchAll(d *todo.Dispatcher, intents ...todo.Intent) error {
	for _, in := range intents {
		if _, err := d.Dispatch(in); err != nil {
			return err
		}
	}
	return nil
}

func writeList(w io.Writer, s todo.State) {
	for _, it := range s.Items() {
		box := "[ ]"
		if it.Done() {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %s  %s\n", box, it.Rendered().Text, it.ID())
	}
}

// resolveID accepts a full id or an unambiguous prefix of one.
func resolveID(s todo.State, arg string) (uuid.UUID, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" {
		return uuid.Nil, appErrors.New(appErrors.CodeNotFound, "empty id", nil)
	}
	if id, err := uuid.Parse(arg); err == nil {
		if _, ok := s.Item(id); ok {
			return id, nil
		}
		return uuid.Nil, appErrors.New(appErrors.CodeNotFound, "no todo with id "+arg, nil)
	}
	var match uuid.UUID
	for _, it := range s.Items() {
		if !strings.HasPrefix(it.ID().String(), arg) {
			continue
		}
		if match != uuid.Nil {
			return uuid.Nil, fmt.Errorf("id prefix %q is ambiguous", arg)
		}
		match = it.ID()
	}
	if match == uuid.Nil {
		return uuid.Nil, appErrors.New(appErrors.CodeNotFound, "no todo with id "+arg, nil)
	}
	return match, nil
}
