// Package alerts renders the list of recent gift alerts.
package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/keys"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/theme"
)

// Model is the scrollable alert list. Only the newest MaxDisplayed
// alerts are shown.
type Model struct {
	items    []model.Notification
	expanded map[model.NotificationKey]bool
	cursor   int

	viewport viewport.Model
	keys     *keys.KeyMap
	theme    theme.Theme
	tr       *i18n.Translator
	now      func() time.Time

	width  int
	height int
}

// New creates an empty list.
func New(k *keys.KeyMap, th theme.Theme, tr *i18n.Translator, width, height int) Model {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()

	return Model{
		expanded: make(map[model.NotificationKey]bool),
		viewport: vp,
		keys:     k,
		theme:    th,
		tr:       tr,
		now:      time.Now,
		width:    width,
		height:   height,
	}
}

// SetItems replaces the displayed alerts, keeping the selection on the
// same alert when it is still present.
func (m *Model) SetItems(list []model.Notification) {
	var selected *model.NotificationKey
	if m.cursor < len(m.items) {
		k := m.items[m.cursor].Key()
		selected = &k
	}

	if len(list) > model.MaxDisplayed {
		list = list[:model.MaxDisplayed]
	}
	m.items = list
	m.cursor = 0

	present := make(map[model.NotificationKey]bool, len(list))
	for i, n := range list {
		present[n.Key()] = true
		if selected != nil && n.Key() == *selected {
			m.cursor = i
		}
	}
	for k := range m.expanded {
		if !present[k] {
			delete(m.expanded, k)
		}
	}

	m.refresh()
}

// Items returns the displayed alerts.
func (m Model) Items() []model.Notification {
	return m.items
}

// Cursor returns the index of the selected alert.
func (m Model) Cursor() int {
	return m.cursor
}

// Expanded reports whether the alert at i shows its full message.
func (m Model) Expanded(i int) bool {
	if i < 0 || i >= len(m.items) {
		return false
	}
	return m.expanded[m.items[i].Key()]
}

// SetTheme swaps styles and re-renders.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	m.refresh()
}

// SetTranslator swaps the language and re-renders.
func (m *Model) SetTranslator(tr *i18n.Translator) {
	m.tr = tr
	m.refresh()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and expand/collapse.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Expand):
		if m.cursor < len(m.items) {
			k := m.items[m.cursor].Key()
			if m.expanded[k] {
				delete(m.expanded, k)
			} else {
				m.expanded[k] = true
			}
		}
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// View renders the list.
func (m Model) View() string {
	if len(m.items) == 0 {
		return m.emptyView()
	}
	return m.viewport.View()
}

func (m Model) emptyView() string {
	title := m.theme.Title.Render(m.tr.T("noGiftNews"))
	desc := m.theme.Help.Width(m.width * 2 / 3).Render(m.tr.T("noGiftNewsDesc"))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, desc))
}

// refresh re-renders the content and scrolls the selection into view.
func (m *Model) refresh() {
	if len(m.items) == 0 {
		m.viewport.SetContent("")
		return
	}

	header := m.theme.Title.Render(fmt.Sprintf("%s · %d %s",
		m.tr.T("recentGiftNews"), len(m.items), m.tr.T("alerts")))

	blocks := []string{header}
	spacing := m.theme.Density.Spacing
	start := lipgloss.Height(header) + spacing
	top, bottom := 0, 0

	for i, n := range m.items {
		block := m.renderItem(i, n)
		if i == m.cursor {
			top, bottom = start, start+lipgloss.Height(block)
		}
		blocks = append(blocks, block)
		start += lipgloss.Height(block) + spacing
	}
	if m.cursor == 0 {
		top = 0
	}

	m.viewport.SetContent(strings.Join(blocks, strings.Repeat("\n", 1+spacing)))

	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m Model) renderItem(i int, n model.Notification) string {
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	title := lipgloss.NewStyle().Bold(true).Render(n.Title())
	when := m.theme.Time.Render(m.tr.RelativeTime(n.Time(), m.now()))
	head := title + "  " + when

	body := m.theme.Message.Width(width).Render(n.Message)
	lines := strings.Split(body, "\n")

	expanded := m.expanded[n.Key()]
	limit := m.theme.Density.MessageLines
	truncated := !expanded && len(lines) > limit
	if truncated {
		lines = lines[:limit]
	}

	parts := []string{head, strings.Join(lines, "\n")}
	switch {
	case truncated:
		parts = append(parts, m.theme.Link.Render(m.tr.T("readMore")))
	case expanded && len(strings.Split(body, "\n")) > limit:
		parts = append(parts, m.theme.Link.Render(m.tr.T("showLess")))
	}
	if n.ChannelID != "" && n.ChannelID != backend.TestChannelID {
		parts = append(parts, m.theme.Time.Render(m.tr.T("viewChannel")+": "+n.ChannelID))
	}

	content := strings.Join(parts, "\n")
	if i == m.cursor {
		return m.theme.Selected.Render(content)
	}
	return m.theme.Item.Render(content)
}
