// Package settings is the preferences screen.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tgift/internal/device"
	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/keys"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/theme"
)

// SavedMsg is emitted when the form is submitted.
type SavedMsg struct {
	Settings model.Settings
	Language string
}

// ClosedMsg is emitted when the screen is left without saving.
type ClosedMsg struct{}

// ResetMsg is emitted when the user confirms clearing all data.
type ResetMsg struct{}

// Mode is the active sub-screen.
type Mode int

const (
	ModeForm Mode = iota
	ModeConfirmReset
)

// values is what the huh fields bind to. It lives behind a pointer so the
// bindings survive Model being copied on every Update.
type values struct {
	vibration    bool
	darkMode     bool
	animations   bool
	sound        string
	fontSize     int
	language     string
	confirmReset bool
}

// Model is the settings view.
type Model struct {
	mode    Mode
	form    *huh.Form
	confirm *huh.Form
	v       *values

	devices  []device.Device
	deviceID string

	keys  *keys.KeyMap
	theme theme.Theme
	tr    *i18n.Translator

	width, height int
}

// New creates a settings view.
func New(k *keys.KeyMap, th theme.Theme, tr *i18n.Translator, width, height int) Model {
	return Model{
		v:      &values{},
		keys:   k,
		theme:  th,
		tr:     tr,
		width:  width,
		height: height,
	}
}

// Open loads s and lang into a fresh form.
func (m Model) Open(s model.Settings, lang string) (Model, tea.Cmd) {
	s = s.Normalize()
	m.v = &values{
		vibration:  s.Vibration,
		darkMode:   s.DarkMode,
		animations: s.Animations,
		sound:      s.NotificationSound,
		fontSize:   s.FontSize,
		language:   lang,
	}
	m.mode = ModeForm
	m.form = m.buildForm()
	return m, m.form.Init()
}

// OpenReset jumps straight to the clear-all-data confirmation.
func (m Model) OpenReset() (Model, tea.Cmd) {
	m.mode = ModeConfirmReset
	m.v.confirmReset = false
	m.confirm = m.buildConfirmForm()
	return m, m.confirm.Init()
}

// SetDevices updates the device registration summary.
func (m *Model) SetDevices(deviceID string, devices []device.Device) {
	m.deviceID = deviceID
	m.devices = devices
}

// SetTheme swaps styles.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
}

// SetTranslator swaps the language used for labels.
func (m *Model) SetTranslator(tr *i18n.Translator) {
	m.tr = tr
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mode returns the active sub-screen.
func (m Model) Mode() Mode {
	return m.mode
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w > 70 {
		w = 70
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) buildForm() *huh.Form {
	t := m.tr.T

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(t("vibration")).
				Description(t("vibrationDesc")).
				Value(&m.v.vibration),
			huh.NewSelect[string]().
				Title(t("giftNotificationSound")).
				Description(t("giftNotificationSoundDesc")).
				Options(
					huh.NewOption(t("default"), model.SoundDefault),
					huh.NewOption(t("silent"), model.SoundSilent),
				).
				Value(&m.v.sound),
		).Title(t("notifications")),
		huh.NewGroup(
			huh.NewConfirm().
				Title(t("darkMode")).
				Description(t("darkModeDesc")).
				Value(&m.v.darkMode),
			huh.NewConfirm().
				Title(t("animations")).
				Description(t("animationsDesc")).
				Value(&m.v.animations),
			huh.NewSelect[int]().
				Title(t("fontSize")).
				Options(
					huh.NewOption(t("small"), model.FontSmall),
					huh.NewOption(t("medium"), model.FontMedium),
					huh.NewOption(t("large"), model.FontLarge),
					huh.NewOption(t("extraLarge"), model.FontExtraLarge),
				).
				Value(&m.v.fontSize),
			huh.NewSelect[string]().
				Title(t("language")).
				Description(t("languageDesc")).
				Options(
					huh.NewOption(t("languageEnglish"), i18n.English),
					huh.NewOption(t("languageRussian"), i18n.Russian),
				).
				Value(&m.v.language),
		).Title(t("appearance")),
	).WithWidth(m.formWidth())
}

func (m Model) buildConfirmForm() *huh.Form {
	t := m.tr.T

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(t("clearDataTitle")).
				Description(t("clearDataMessage")).
				Affirmative(t("resetApp")).
				Negative(t("cancel")).
				Value(&m.v.confirmReset),
		),
	).WithWidth(m.formWidth())
}

// current returns the settings described by the form values.
func (m Model) current() model.Settings {
	return model.Settings{
		Vibration:         m.v.vibration,
		DarkMode:          m.v.darkMode,
		Animations:        m.v.animations,
		FontSize:          m.v.fontSize,
		NotificationSound: m.v.sound,
	}.Normalize()
}

// Update routes messages to the active form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeConfirmReset:
		return m.updateConfirm(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Back):
			return m, func() tea.Msg { return ClosedMsg{} }
		case key.Matches(km, m.keys.Reset):
			return m.OpenReset()
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		saved := SavedMsg{Settings: m.current(), Language: m.v.language}
		return m, func() tea.Msg { return saved }
	case huh.StateAborted:
		return m, func() tea.Msg { return ClosedMsg{} }
	}

	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Back) {
		return m.backToForm()
	}

	if m.confirm == nil {
		return m.backToForm()
	}

	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		if m.v.confirmReset {
			return m, func() tea.Msg { return ResetMsg{} }
		}
		return m.backToForm()
	case huh.StateAborted:
		return m.backToForm()
	}

	return m, cmd
}

func (m Model) backToForm() (Model, tea.Cmd) {
	m.mode = ModeForm
	if m.form == nil {
		return m, func() tea.Msg { return ClosedMsg{} }
	}
	return m, nil
}

// View renders the active sub-screen.
func (m Model) View() string {
	var body string
	switch m.mode {
	case ModeConfirmReset:
		if m.confirm != nil {
			body = m.confirm.View()
		}
	default:
		if m.form != nil {
			body = lipgloss.JoinVertical(lipgloss.Left, m.form.View(), "", m.devicesView())
		}
	}

	title := m.theme.Title.Render(m.tr.T("settings"))
	return m.theme.Panel.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m Model) devicesView() string {
	t := m.tr.T

	lines := []string{
		m.theme.Title.UnsetMarginBottom().Render(t("deviceRegistration")),
		t("registeredDevices", i18n.Vars{"count": len(m.devices)}),
	}
	if m.deviceID != "" {
		lines = append(lines, m.theme.Time.Render(m.deviceID))
	}
	if len(m.devices) == 0 {
		lines = append(lines, m.theme.Help.Render(t("noDevicesRegistered")))
	}
	for i, d := range m.devices {
		lines = append(lines, fmt.Sprintf("%d. %s  %s", i+1, d.Name,
			m.theme.Time.Render(d.RegisteredAt.Local().Format("2006-01-02 15:04"))))
	}
	lines = append(lines, "", m.theme.Help.Render("R "+strings.ToLower(t("clearAllData"))))

	return strings.Join(lines, "\n")
}
