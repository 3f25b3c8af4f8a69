// Package device registers this installation with the backend for push
// delivery and keeps the local list of registered devices.
package device

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/credential"
)

// Sentinel tokens returned when no real push token is available.
const (
	NoPermissions = "no-permissions"
	DevModeActive = "dev-mode-active"
)

// TokenFunc obtains the push token, or one of the sentinels.
type TokenFunc func(ctx context.Context) string

// IsSentinel reports whether token is a placeholder rather than a real
// push token.
func IsSentinel(token string) bool {
	return token == "" || token == NoPermissions || token == DevModeActive
}

// DefaultToken returns a TokenFunc that prefers the configured token,
// then the token kept in creds, and otherwise reports dev mode. A
// keyring that cannot be opened reads as no permissions.
func DefaultToken(configured string, creds credential.Store, logger zerolog.Logger) TokenFunc {
	return func(ctx context.Context) string {
		if t := strings.TrimSpace(configured); t != "" {
			return t
		}
		if creds == nil {
			return DevModeActive
		}

		t, err := creds.Get(credential.KeyPushToken)
		switch {
		case err == nil && strings.TrimSpace(t) != "":
			return strings.TrimSpace(t)
		case err == nil, errors.Is(err, credential.ErrNotFound):
			return DevModeActive
		default:
			logger.Warn().Err(err).Msg("reading push token")
			return NoPermissions
		}
	}
}
