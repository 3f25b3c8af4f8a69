package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/device"
	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/keys"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/probe"
	"github.com/nhle/tgift/internal/settings"
	appsync "github.com/nhle/tgift/internal/sync"
	"github.com/nhle/tgift/internal/theme"
	"github.com/nhle/tgift/internal/ui"
	"github.com/nhle/tgift/internal/ui/alerts"
	"github.com/nhle/tgift/internal/ui/command"
	helpview "github.com/nhle/tgift/internal/ui/help"
	"github.com/nhle/tgift/internal/ui/indicator"
	settingsview "github.com/nhle/tgift/internal/ui/settings"
)

// flashDuration is how long the header stays highlighted after new
// alerts arrive with vibration enabled.
const flashDuration = 600 * time.Millisecond

// noticeDuration is how long a status bar notice stays visible.
const noticeDuration = 4 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewSettings
	ViewHelp
	ViewCommand
)

// Deps are the services the UI drives.
type Deps struct {
	Scheduler *appsync.Scheduler
	Settings  *settings.Manager
	Registrar *device.Registrar
	Client    *backend.Client
	Logger    zerolog.Logger

	// Bell rings the terminal bell. Nil disables audible cues.
	Bell func()

	// Forget removes secrets kept outside the local store during a reset.
	Forget func() error
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and the refresh loop.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	deps         Deps
	logger       zerolog.Logger

	settings model.Settings
	theme    theme.Theme
	tr       *i18n.Translator

	alerts       alerts.Model
	indicator    indicator.Model
	settingsView settingsview.Model
	helpView     helpview.Model
	commandView  command.Model
	spinner      spinner.Model

	status     model.ConnectionStatus
	probed     bool
	countdown  int
	badge      int
	refreshing bool

	flash    bool
	flashGen int

	notice      string
	noticeError bool
	noticeGen   int

	ready bool
}

// New creates the root model with the stored settings s and language.
func New(deps Deps, s model.Settings, lang string) Model {
	k := keys.DefaultKeyMap()
	th := theme.New(s)
	tr := i18n.New(lang)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	countdown := appsync.DefaultPeriod
	if deps.Scheduler != nil {
		countdown = time.Duration(deps.Scheduler.Period()) * time.Second
	}

	return Model{
		currentView:  ViewList,
		keys:         k,
		deps:         deps,
		logger:       logging.Component(deps.Logger, "app"),
		settings:     s,
		theme:        th,
		tr:           tr,
		alerts:       alerts.New(k, th, tr, 80, 24),
		indicator:    indicator.New(s.Animations),
		settingsView: settingsview.New(k, th, tr, 80, 24),
		helpView:     helpview.New(k, th, tr, deps.Client.BaseURL(), 80, 24),
		commandView:  command.New(th, tr, 80, 24),
		spinner:      sp,
		countdown:    int(countdown / time.Second),
		refreshing:   true,
	}
}

// Init starts the refresh loop and registers the device.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.deps.Scheduler.Start(),
		m.spinner.Tick,
		m.register(),
		m.loadDevices(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.alerts.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.CycleResultMsg:
		return m.applyCycle(msg)

	case appsync.CountdownMsg:
		m.countdown = msg.Remaining
		return m, m.deps.Scheduler.WaitForNext()

	case indicator.FrameMsg:
		var cmd tea.Cmd
		m.indicator, cmd = m.indicator.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case flashEndMsg:
		if msg.gen == m.flashGen {
			m.flash = false
		}
		return m, nil

	case noticeEndMsg:
		if msg.gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil

	case testSentMsg:
		if msg.err != nil {
			c := m.showError(m.tr.T("testNotificationError", i18n.Vars{"error": m.describe(msg.err)}))
			return m, c
		}
		m.deps.Scheduler.RefreshNow()
		c := m.showNotice(m.tr.T("testNotificationSuccess"))
		return m, c

	case registeredMsg:
		switch {
		case msg.err != nil:
			c := m.showError(m.tr.T("deviceRegistrationFailed") + " " + m.describe(msg.err))
			return m, c
		case msg.result.Skipped:
			c := m.showNotice(m.tr.T("registrationSkipped", i18n.Vars{"reason": msg.result.Token}))
			return m, tea.Batch(c, m.loadDevices())
		}
		c := tea.Batch(m.showNotice(m.tr.T("deviceRegistered")), m.loadDevices())
		return m, c

	case devicesLoadedMsg:
		m.settingsView.SetDevices(msg.id, msg.devices)
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			c := m.showError(msg.err.Error())
			return m, c
		}
		cmd := m.applySettings(msg.settings, msg.lang)
		c := tea.Batch(cmd, m.showNotice(m.tr.T("settingsSaved")))
		return m, c

	case resetDoneMsg:
		// The subscription from Init is still live; the command returned by
		// Start would add a second one.
		_ = m.deps.Scheduler.Start()
		if msg.err != nil {
			c := m.showError(m.tr.T("appResetFailed"))
			return m, c
		}
		m.currentView = ViewList
		m.badge = 0
		m.alerts.SetItems(nil)
		cmd := m.applySettings(msg.settings, i18n.DefaultLanguage)
		c := tea.Batch(cmd, m.showNotice(m.tr.T("appResetSuccess")), m.loadDevices())
		return m, c

	case settingsview.SavedMsg:
		m.currentView = ViewList
		return m, m.saveSettings(msg.Settings, msg.Language)

	case settingsview.ClosedMsg:
		m.currentView = ViewList
		return m, nil

	case settingsview.ResetMsg:
		// No cycle may write the cache between ClearAll and the restart.
		m.deps.Scheduler.Stop()
		return m, m.reset()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work outside of text input.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, m.quit(), true
	}

	// Settings and the palette own the keyboard while open.
	if m.currentView == ViewSettings {
		return m, nil, false
	}
	if m.currentView == ViewCommand {
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Back) && m.currentView == ViewHelp:
		m.currentView = m.previousView
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		c := m.commandView.Focus()
		return m, c, true

	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(), true
	}

	if m.currentView != ViewList {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		c := m.refresh()
		return m, c, true
	case key.Matches(msg, m.keys.Test):
		return m, m.sendTest(), true
	case key.Matches(msg, m.keys.Register):
		return m, m.register(), true
	case key.Matches(msg, m.keys.Settings):
		next, cmd := m.openSettings()
		return next, cmd, true
	case key.Matches(msg, m.keys.Reset):
		next, cmd := m.openReset()
		return next, cmd, true
	}

	return m, nil, false
}

// applyCycle folds a scheduler result into the view and fires cues.
func (m Model) applyCycle(msg appsync.CycleResultMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.deps.Scheduler.WaitForNext()}

	m.status = msg.Status
	m.probed = true
	m.refreshing = false
	m.alerts.SetItems(msg.Notifications)

	var cmd tea.Cmd
	m.indicator, cmd = m.indicator.SetConnected(msg.Status.Connected)
	cmds = append(cmds, cmd)

	if msg.NewCount > 0 {
		m.badge += msg.NewCount
		cmds = append(cmds, m.cue())
	}

	return m, tea.Batch(cmds...)
}

// cue plays the new-alert signals the settings allow.
func (m *Model) cue() tea.Cmd {
	if m.settings.NotificationSound != model.SoundSilent && m.deps.Bell != nil {
		m.deps.Bell()
	}
	if !m.settings.Vibration {
		return nil
	}

	m.flash = true
	m.flashGen++
	gen := m.flashGen
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashEndMsg{gen: gen}
	})
}

// applySettings rebuilds everything that depends on settings or language.
func (m *Model) applySettings(s model.Settings, lang string) tea.Cmd {
	m.settings = s
	m.theme = theme.New(s)
	m.tr = i18n.New(lang)

	m.alerts.SetTranslator(m.tr)
	m.alerts.SetTheme(m.theme)
	m.settingsView.SetTheme(m.theme)
	m.settingsView.SetTranslator(m.tr)
	m.helpView.SetTheme(m.theme)
	m.helpView.SetTranslator(m.tr)
	m.commandView.SetTheme(m.theme)
	m.commandView.SetTranslator(m.tr)

	var cmd tea.Cmd
	m.indicator, cmd = m.indicator.SetAnimations(s.Animations)
	return cmd
}

func (m Model) openSettings() (Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewSettings
	var cmd tea.Cmd
	m.settingsView, cmd = m.settingsView.Open(m.settings, m.tr.Language())
	return m, tea.Batch(cmd, m.loadDevices())
}

func (m Model) openReset() (Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewSettings
	var cmd tea.Cmd
	m.settingsView, cmd = m.settingsView.OpenReset()
	return m, cmd
}

func (m *Model) refresh() tea.Cmd {
	m.badge = 0
	m.refreshing = true
	m.deps.Scheduler.RefreshNow()
	return m.spinner.Tick
}

func (m Model) quit() tea.Cmd {
	m.deps.Scheduler.Stop()
	return tea.Quit
}

func (m *Model) showNotice(text string) tea.Cmd {
	return m.setNotice(text, false)
}

func (m *Model) showError(text string) tea.Cmd {
	m.logger.Warn().Msg(text)
	return m.setNotice(text, true)
}

func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeError = isErr
	m.noticeGen++
	gen := m.noticeGen
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeEndMsg{gen: gen}
	})
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.ToLower(cmd))
	if len(fields) == 0 {
		return m, nil
	}

	switch fields[0] {
	case "refresh", "sync":
		c := m.refresh()
		return m, c
	case "test", "notify":
		return m, m.sendTest()
	case "register":
		return m, m.register()
	case "settings", "config":
		return m.openSettings()
	case "reset", "clear":
		return m.openReset()
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil
	case "quit", "q":
		return m, m.quit()
	case "lang", "language":
		if len(fields) == 2 && i18n.Supported(fields[1]) {
			return m, m.saveSettings(m.settings, fields[1])
		}
	case "theme":
		if len(fields) == 2 && (fields[1] == "dark" || fields[1] == "light") {
			s := m.settings
			s.DarkMode = fields[1] == "dark"
			return m, m.saveSettings(s, m.tr.Language())
		}
	}

	c := m.showError(m.tr.T("unknownCommand", i18n.Vars{"command": cmd}))
	return m, c
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.alerts, cmd = m.alerts.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.theme, m.headerTitle(), m.headerStatus(), m.flash)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.theme, m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return m.alerts.View()
	}
}

func (m Model) headerTitle() string {
	title := "🎁 " + m.tr.T("appTitle")
	if m.badge > 0 {
		title += " [" + m.tr.T("newAlerts", i18n.Vars{"count": m.badge}) + "]"
	}
	return title
}

func (m Model) headerStatus() string {
	parts := []string{m.indicator.View(m.theme) + " " + m.statusLabel()}
	if m.refreshing {
		parts = append(parts, m.spinner.View())
	}
	parts = append(parts, m.tr.T("nextRefresh", i18n.Vars{"seconds": m.countdown}))
	return strings.Join(parts, " · ")
}

// statusLabel localizes the probe label.
func (m Model) statusLabel() string {
	st := m.status
	switch {
	case !m.probed:
		return m.tr.T("refreshing")
	case st.Connected && st.Label == probe.LabelTelegramOffline:
		return m.tr.T("connected") + " (Telegram " + strings.ToLower(m.tr.T("offline")) + ")"
	case st.Connected:
		return m.tr.T("connected")
	case st.Failure == model.FailureHTTP:
		return fmt.Sprintf("%s (%d)", m.tr.T("backendError"), st.HTTPStatus)
	default:
		return m.tr.T("connectionFailed")
	}
}

// statusLine is the notice when one is showing, else key hints.
func (m Model) statusLine() string {
	if m.notice != "" {
		if m.noticeError {
			return m.theme.Error.Render(m.notice)
		}
		return m.theme.Notice.Render(m.notice)
	}

	t := m.tr.T
	switch m.currentView {
	case ViewHelp:
		return "? / esc"
	case ViewCommand:
		return "enter · esc"
	case ViewSettings:
		return "enter · esc · R " + strings.ToLower(t("clearAllData"))
	default:
		return strings.Join([]string{
			"r " + t("keyRefresh"),
			"t " + t("keyTest"),
			"g " + t("keyRegister"),
			"s " + t("keySettings"),
			"? " + t("keyHelp"),
			"q " + t("keyQuit"),
		}, " | ")
	}
}
