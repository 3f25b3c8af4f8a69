// Package settings persists user preferences and the UI language.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/store"
)

// Manager reads and writes settings through a key-value store.
type Manager struct {
	kv     store.KV
	logger zerolog.Logger
}

// New creates a Manager.
func New(kv store.KV, logger zerolog.Logger) *Manager {
	return &Manager{kv: kv, logger: logging.Component(logger, "settings")}
}

// Load returns the stored settings merged over the defaults. Fields
// missing from the stored blob keep their default value. A corrupt blob
// yields the defaults.
func (m *Manager) Load(ctx context.Context) model.Settings {
	s := model.DefaultSettings()

	raw, err := m.kv.Get(ctx, store.KeySettings)
	if errors.Is(err, store.ErrNotFound) {
		return s
	}
	if err != nil {
		m.logger.Error().Err(err).Msg("loading settings")
		return s
	}

	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.logger.Warn().Err(err).Msg("stored settings are corrupt, using defaults")
		return model.DefaultSettings()
	}

	return s.Normalize()
}

// Save normalizes and persists s.
func (m *Manager) Save(ctx context.Context, s model.Settings) (model.Settings, error) {
	s = s.Normalize()

	data, err := json.Marshal(s)
	if err != nil {
		return s, fmt.Errorf("encoding settings: %w", err)
	}
	if err := m.kv.Set(ctx, store.KeySettings, string(data)); err != nil {
		return s, fmt.Errorf("saving settings: %w", err)
	}

	return s, nil
}

// Language returns the stored UI language, or English when none is set
// or the stored code is not supported.
func (m *Manager) Language(ctx context.Context) string {
	code, err := m.kv.Get(ctx, store.KeyLanguage)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.logger.Error().Err(err).Msg("loading language")
		}
		return i18n.DefaultLanguage
	}
	if !i18n.Supported(code) {
		return i18n.DefaultLanguage
	}
	return code
}

// LanguageSet reports whether a supported language was ever stored.
func (m *Manager) LanguageSet(ctx context.Context) bool {
	code, err := m.kv.Get(ctx, store.KeyLanguage)
	return err == nil && i18n.Supported(code)
}

// SetLanguage stores code. Only supported codes are accepted.
func (m *Manager) SetLanguage(ctx context.Context, code string) error {
	if !i18n.Supported(code) {
		return fmt.Errorf("unsupported language %q", code)
	}
	if err := m.kv.Set(ctx, store.KeyLanguage, code); err != nil {
		return fmt.Errorf("saving language: %w", err)
	}
	return nil
}

// ClearAll wipes every persisted key, including cached notifications and
// device registrations, then stores and returns the default settings.
func (m *Manager) ClearAll(ctx context.Context) (model.Settings, error) {
	if err := m.kv.Clear(ctx); err != nil {
		return model.DefaultSettings(), fmt.Errorf("clearing local data: %w", err)
	}

	s, err := m.Save(ctx, model.DefaultSettings())
	if err != nil {
		return s, err
	}

	m.logger.Info().Msg("local data cleared")
	return s, nil
}
