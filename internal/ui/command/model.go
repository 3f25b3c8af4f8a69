// Package command implements the ":" palette.
package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Entry describes one palette command.
type Entry struct {
	// Usage is what the user types, including fixed arguments.
	Usage string
	// HelpKey is the translation key of the one-line description.
	HelpKey string
}

// Entries lists the commands understood by the palette, in display order.
var Entries = []Entry{
	{"refresh", "cmdRefresh"},
	{"test", "cmdTest"},
	{"register", "cmdRegister"},
	{"settings", "cmdSettings"},
	{"reset", "cmdReset"},
	{"lang en", "cmdLang"},
	{"lang ru", "cmdLang"},
	{"theme dark", "cmdTheme"},
	{"theme light", "cmdTheme"},
	{"help", "cmdHelp"},
	{"quit", "cmdQuit"},
}

// Matching returns the entries whose usage starts with the typed prefix.
// An empty prefix matches everything.
func Matching(prefix string) []Entry {
	prefix = strings.ToLower(strings.TrimLeft(prefix, " "))
	if prefix == "" {
		return Entries
	}

	var out []Entry
	for _, e := range Entries {
		if strings.HasPrefix(e.Usage, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func usages() []string {
	out := make([]string, len(Entries))
	for i, e := range Entries {
		out[i] = e.Usage
	}
	return out
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	theme  theme.Theme
	tr     *i18n.Translator
	width  int
	height int
}

// New creates a palette with a focused, empty input.
func New(th theme.Theme, tr *i18n.Translator, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = tr.T("commandPlaceholder")
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(usages())
	ti.Focus()

	m := Model{input: ti, theme: th, tr: tr}
	m.SetSize(width, height)
	return m
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		return m, func() tea.Msg { return CommandMsg(line) }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Value returns the text typed so far.
func (m Model) Value() string {
	return m.input.Value()
}

// View renders the input followed by the commands matching it.
func (m Model) View() string {
	rows := []string{
		m.theme.Title.Render(m.tr.T("commandPalette")),
		m.input.View(),
		"",
	}

	width := 0
	for _, e := range Entries {
		width = max(width, lipgloss.Width(e.Usage))
	}
	for _, e := range Matching(m.input.Value()) {
		usage := m.theme.Selected.Render(e.Usage + strings.Repeat(" ", width-lipgloss.Width(e.Usage)))
		rows = append(rows, usage+"  "+m.theme.Help.Render(m.tr.T(e.HelpKey)))
	}

	return m.theme.Panel.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetTheme swaps styles.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
}

// SetTranslator switches the palette language.
func (m *Model) SetTranslator(tr *i18n.Translator) {
	m.tr = tr
	m.input.Placeholder = tr.T("commandPlaceholder")
}

// SetSize updates the palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 1)
}

// Focus clears the previous line and gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}
