package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/keys"
	"github.com/nhle/tgift/internal/theme"
)

// Model is the help overlay view: key bindings plus the about block.
type Model struct {
	keys    *keys.KeyMap
	help    help.Model
	theme   theme.Theme
	tr      *i18n.Translator
	backend string
	width   int
	height  int
}

// New creates a new help view model. backend is the resolved base URL
// shown in the about block.
func New(k *keys.KeyMap, th theme.Theme, tr *i18n.Translator, backend string, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:    k,
		help:    h,
		theme:   th,
		tr:      tr,
		backend: backend,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	about := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.tr.T("about")),
		m.tr.T("appVersion")+" · "+m.tr.T("appDescription"),
		m.tr.T("telegramChannel")+m.theme.Link.Render(m.tr.T("telegramChannelLink")),
		m.theme.Time.Render(m.backend),
		m.theme.Help.Render(m.tr.T("madeWith")),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Keyboard Shortcuts"),
		helpText,
		"",
		about,
	)

	return m.theme.Panel.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetTheme swaps styles.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
}

// SetTranslator swaps the language.
func (m *Model) SetTranslator(tr *i18n.Translator) {
	m.tr = tr
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
