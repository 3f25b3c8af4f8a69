package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// Fixed keys of the persisted local state.
const (
	KeyNotifications = "tgift_notifications"
	KeySettings      = "tgift_settings"
	KeyLanguage      = "app_language"
	KeyDevices       = "registered_devices"
	KeyDeviceID      = "device_id"
)

// KV is a flat string key-value store for device-local state.
// Writes overwrite; the last write wins.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}
