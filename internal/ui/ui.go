package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"todo/internal/config"
	"todo/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

// Model renders the dispatcher's state and turns key presses into intents.
// It never changes items itself.
type Model struct {
	disp   *todo.Dispatcher
	cfg    config.Config
	keys   keyMap
	help   help.Model
	state  todo.State
	cursor int
	mode   mode
	input  textinput.Model
	status string

	// replaceOnType emulates select-all: the next typed character replaces
	// the whole text instead of appending to it.
	replaceOnType bool
}

func New(disp *todo.Dispatcher, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 0
	ti.Width = 40

	m := Model{
		disp:   disp,
		cfg:    cfg,
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		state:  disp.State(),
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Edit),
	}
	return m
}

func Run(disp *todo.Dispatcher, cfg config.Config) error {
	program := tea.NewProgram(New(disp, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if id, ok := m.state.SelectedID(); ok {
			return m.updateEditMode(id, msg)
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg)
		}
		return m.updateListMode(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
	}
	return m, nil
}

// dispatch routes in through the dispatcher and refreshes the snapshot.
func (m *Model) dispatch(in todo.Intent) bool {
	_, err := m.disp.Dispatch(in)
	m.state = m.disp.State()
	m.cursor = clampCursor(m.cursor, m.state.Len())
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return false
	}
	return true
}

func (m Model) current() (todo.Item, bool) {
	items := m.state.Items()
	if len(items) == 0 {
		return todo.Item{}, false
	}
	return items[clampCursor(m.cursor, len(items))], true
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, m.state.Len())
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, m.state.Len())
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue(m.state.Draft())
		m.input.CursorEnd()
		m.status = "Add mode: type a title and press Enter"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		it, ok := m.current()
		if !ok {
			return m, nil
		}
		if m.dispatch(todo.ToggleDone(it.ID())) {
			m.status = "Toggled task"
		}
	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit(false)
	case key.Matches(msg, m.keys.Rename):
		return m.beginEdit(true)
	case key.Matches(msg, m.keys.ClearCompleted):
		if m.dispatch(todo.ClearCompleted()) {
			m.status = "Cleared completed tasks"
		}
	case key.Matches(msg, m.keys.Reload):
		if m.dispatch(todo.Reload()) {
			m.status = fmt.Sprintf("Reloaded %d tasks", m.state.Len())
		}
	case key.Matches(msg, m.keys.Save):
		if m.dispatch(todo.Save()) {
			m.status = "Saved"
		}
	}
	return m, nil
}

// beginEdit selects the item under the cursor. With selectAll the first
// keystroke replaces the text, like a double-click on the item.
func (m Model) beginEdit(selectAll bool) (tea.Model, tea.Cmd) {
	it, ok := m.current()
	if !ok {
		m.status = "No tasks to edit"
		return m, nil
	}
	m.dispatch(todo.Select(it.ID()))
	if _, editing := m.state.SelectedID(); !editing {
		return m, nil
	}
	m.input.SetValue(it.Text())
	m.input.CursorEnd()
	m.replaceOnType = selectAll
	m.status = "Editing: Enter to keep, Esc to discard"
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateEditMode(id uuid.UUID, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.finishEdit()
		if m.dispatch(todo.Confirm(id)) {
			m.status = "Saved task"
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.finishEdit()
		m.dispatch(todo.Cancel(id))
		m.status = "Edit cancelled"
		return m, nil
	}

	if m.replaceOnType {
		m.replaceOnType = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete:
			m.input.SetValue("")
			if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
				m.dispatch(todo.SetText(id, ""))
				return m, nil
			}
		}
	}

	// The input flattens tabs and newlines, so its value is only pushed
	// back once a key has actually changed it.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.dispatch(todo.SetText(id, m.input.Value()))
	}
	return m, cmd
}

func (m *Model) finishEdit() {
	m.replaceOnType = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Cancelled, draft kept"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		if m.dispatch(todo.Add(title)) {
			m.status = "Added task"
		}
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.dispatch(todo.SetDraft(m.input.Value()))
		return m, cmd
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n\n")

	if m.state.Len() == 0 {
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.\n", m.cfg.Keys.Add))
	} else {
		b.WriteString(m.renderTaskList())
	}

	if m.mode == modeAdd {
		b.WriteString("\nAdd Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	if _, editing := m.state.SelectedID(); editing || m.mode == modeAdd {
		b.WriteString(m.help.View(editHelp{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, it := range m.state.Items() {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		if it.Done() {
			checkbox = "[x]"
		}

		body := renderItem(it)
		if it.Editing() {
			body = m.input.View()
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, body))
	}
	return b.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
