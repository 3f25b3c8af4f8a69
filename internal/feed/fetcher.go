// Package feed pulls gift alerts from the backend and reconciles them
// with the locally cached list.
package feed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/cache"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
)

// notificationsResponse is the body of GET /notifications.
type notificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
}

// Fetcher retrieves and merges remote alerts.
type Fetcher struct {
	client *backend.Client
	cache  *cache.Cache
	logger zerolog.Logger
}

// New creates a Fetcher that persists merged lists into c.
func New(client *backend.Client, c *cache.Cache, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		cache:  c,
		logger: logging.Component(logger, "feed"),
	}
}

// Pull fetches the remote list and reconciles it with current without
// persisting anything. A failed request returns a *backend.Error. A
// response without notifications returns current unchanged.
func (f *Fetcher) Pull(
	ctx context.Context,
	current []model.Notification,
) ([]model.Notification, error) {
	var resp notificationsResponse
	if err := f.client.Get(ctx, backend.PathNotifications, &resp); err != nil {
		return current, err
	}

	if len(resp.Notifications) == 0 {
		return current, nil
	}

	return Reconcile(resp.Notifications, current), nil
}

// Fetch is the fail-soft form of Pull: any failure is logged and current
// is returned unchanged. A successful merge is saved to the cache.
func (f *Fetcher) Fetch(
	ctx context.Context,
	current []model.Notification,
) []model.Notification {
	list, err := f.Pull(ctx, current)
	if err != nil {
		f.LogFailure(err)
		return current
	}

	f.cache.Save(ctx, list)
	return list
}

// LogFailure records a failed pull at a level matching its kind.
// Canceled pulls are routine on shutdown and logged at debug.
func (f *Fetcher) LogFailure(err error) {
	if backend.IsCanceled(err) {
		f.logger.Debug().Err(err).Msg("fetch canceled")
		return
	}
	switch backend.KindOf(err) {
	case backend.KindStatus:
		f.logger.Warn().Int("status", backend.StatusCode(err)).Msg("fetching notifications")
	case backend.KindTransport:
		f.logger.Error().Err(err).Msg("fetching notifications")
	default:
		f.logger.Warn().Err(err).Msg("fetching notifications")
	}
}
