package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todo/internal/config"
)

type keyMap struct {
	Quit           key.Binding
	Add            key.Binding
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Edit           key.Binding
	Rename         key.Binding
	Confirm        key.Binding
	Cancel         key.Binding
	ClearCompleted key.Binding
	Reload         key.Binding
	Save           key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:           key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:            key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Up:             key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up+"/"+k.Down, "move")),
		Down:           key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Up+"/"+k.Down, "move")),
		Toggle:         key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(keyLabel(k.Toggle), "toggle")),
		Edit:           key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "edit")),
		Rename:         key.NewBinding(key.WithKeys(k.Rename), key.WithHelp(k.Rename, "rename")),
		Confirm:        key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "confirm")),
		Cancel:         key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		ClearCompleted: key.NewBinding(key.WithKeys(k.ClearCompleted), key.WithHelp(k.ClearCompleted, "clear done")),
		Reload:         key.NewBinding(key.WithKeys(k.Reload), key.WithHelp(k.Reload, "reload")),
		Save:           key.NewBinding(key.WithKeys(k.Save), key.WithHelp(k.Save, "save")),
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Add, k.Toggle, k.Edit, k.Rename, k.ClearCompleted, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle},
		{k.Edit, k.Rename, k.Confirm, k.Cancel},
		{k.ClearCompleted, k.Reload, k.Save, k.Quit},
	}
}

// editHelp is shown while an item or the draft has the input.
type editHelp struct{ k keyMap }

func (e editHelp) ShortHelp() []key.Binding  { return []key.Binding{e.k.Confirm, e.k.Cancel} }
func (e editHelp) FullHelp() [][]key.Binding { return [][]key.Binding{e.ShortHelp()} }
