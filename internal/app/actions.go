package app

import (
	"context"
	"errors"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/device"
	"github.com/nhle/tgift/internal/model"
)

// actionTimeout bounds a single user-triggered backend call.
const actionTimeout = 30 * time.Second

type flashEndMsg struct{ gen int }

type noticeEndMsg struct{ gen int }

type testSentMsg struct{ err error }

type registeredMsg struct {
	result device.Result
	err    error
}

type devicesLoadedMsg struct {
	id      string
	devices []device.Device
}

type settingsSavedMsg struct {
	settings model.Settings
	lang     string
	err      error
}

type resetDoneMsg struct {
	settings model.Settings
	err      error
}

func (m Model) sendTest() tea.Cmd {
	client := m.deps.Client
	n := backend.TestNotification(m.tr.T("testNotificationTitle"), m.tr.T("testNotificationMessage"), time.Now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return testSentMsg{err: client.SendTestNotification(ctx, n)}
	}
}

func (m Model) register() tea.Cmd {
	r := m.deps.Registrar
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*actionTimeout)
		defer cancel()
		res, err := r.Register(ctx)
		return registeredMsg{result: res, err: err}
	}
}

func (m Model) loadDevices() tea.Cmd {
	r := m.deps.Registrar
	if r == nil {
		return nil
	}
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		id, err := r.DeviceID(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("reading device id")
		}
		devices, err := r.Devices(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("listing devices")
		}
		return devicesLoadedMsg{id: id, devices: devices}
	}
}

func (m Model) saveSettings(s model.Settings, lang string) tea.Cmd {
	mgr := m.deps.Settings
	return func() tea.Msg {
		ctx := context.Background()
		saved, err := mgr.Save(ctx, s)
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		if err := mgr.SetLanguage(ctx, lang); err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{settings: saved, lang: lang}
	}
}

func (m Model) reset() tea.Cmd {
	mgr := m.deps.Settings
	forget := m.deps.Forget
	logger := m.logger
	return func() tea.Msg {
		s, err := mgr.ClearAll(context.Background())
		if err != nil {
			return resetDoneMsg{err: err}
		}
		if forget != nil {
			if err := forget(); err != nil {
				logger.Warn().Err(err).Msg("removing stored secrets")
			}
		}
		return resetDoneMsg{settings: s}
	}
}

// describe turns a backend failure into a short user-facing reason.
func (m Model) describe(err error) string {
	var e *backend.Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case backend.KindTransport:
		return m.tr.T("networkErrorMessage")
	case backend.KindStatus:
		if e.Detail != "" {
			return e.Detail
		}
		return "HTTP " + strconv.Itoa(e.StatusCode)
	default:
		return err.Error()
	}
}
