// Package cache persists the last known alert list on the device.
//
// The cache is fail-soft: a missing, unreadable, or corrupt payload loads
// as an empty list and write failures are logged, never returned.
package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
	"github.com/nhle/tgift/internal/store"
)

// Cache stores the alert list as a JSON array under a fixed key.
type Cache struct {
	kv     store.KV
	logger zerolog.Logger
}

// New creates a Cache backed by kv.
func New(kv store.KV, logger zerolog.Logger) *Cache {
	return &Cache{
		kv:     kv,
		logger: logging.Component(logger, "cache"),
	}
}

// Load returns the last persisted list, or an empty list when none
// exists or the payload cannot be read.
func (c *Cache) Load(ctx context.Context) []model.Notification {
	raw, err := c.kv.Get(ctx, store.KeyNotifications)
	if errors.Is(err, store.ErrNotFound) {
		return []model.Notification{}
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("reading cached notifications")
		return []model.Notification{}
	}

	var list []model.Notification
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		c.logger.Warn().Err(err).Msg("discarding corrupt notification cache")
		return []model.Notification{}
	}
	if list == nil {
		list = []model.Notification{}
	}
	return list
}

// Save overwrites the persisted list.
func (c *Cache) Save(ctx context.Context, list []model.Notification) {
	if list == nil {
		list = []model.Notification{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		c.logger.Error().Err(err).Msg("encoding notifications")
		return
	}

	if err := c.kv.Set(ctx, store.KeyNotifications, string(data)); err != nil {
		c.logger.Error().Err(err).Int("count", len(list)).Msg("saving notifications")
		return
	}

	c.logger.Debug().Int("count", len(list)).Msg("notifications cached")
}

// Clear removes the persisted list.
func (c *Cache) Clear(ctx context.Context) {
	if err := c.kv.Delete(ctx, store.KeyNotifications); err != nil {
		c.logger.Error().Err(err).Msg("clearing notifications")
	}
}
