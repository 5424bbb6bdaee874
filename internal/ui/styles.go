package ui

import (
	"github.com/charmbracelet/lipgloss"

	"todo/internal/todo"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func renderItem(it todo.Item) string {
	r := it.Rendered()
	if r.Struck {
		return doneStyle.Render(r.Text)
	}
	return r.Text
}
