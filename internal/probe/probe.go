// Package probe checks whether the backend is reachable.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/model"
)

// Status labels.
const (
	LabelConnected        = "Connected"
	LabelTelegramOffline  = "Connected (Telegram offline)"
	LabelConnectionFailed = "Connection Failed"
	labelBackendError     = "Backend Error (%d)"
)

// statusResponse is the body of GET /status. Only telegram_connected is
// read; the rest of the payload is ignored.
type statusResponse struct {
	TelegramConnected *bool `json:"telegram_connected"`
}

// Prober performs health checks against the backend status endpoint.
type Prober struct {
	client *backend.Client
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a Prober.
func New(client *backend.Client, logger zerolog.Logger) *Prober {
	return &Prober{
		client: client,
		logger: logging.Component(logger, "probe"),
		now:    time.Now,
	}
}

// Check queries the status endpoint. The returned status is always
// populated; err is the underlying *backend.Error when not connected.
func (p *Prober) Check(ctx context.Context) (model.ConnectionStatus, error) {
	var raw json.RawMessage
	code, err := p.client.GetStatus(ctx, backend.PathStatus, &raw)

	st := model.ConnectionStatus{
		HTTPStatus: code,
		CheckedAt:  p.now(),
	}

	switch backend.KindOf(err) {
	case backend.KindStatus:
		st.Failure = model.FailureHTTP
		st.Label = fmt.Sprintf(labelBackendError, backend.StatusCode(err))
		return st, err

	case backend.KindTransport:
		st.Failure = model.FailureTransport
		st.Label = LabelConnectionFailed
		return st, err
	}

	if err != nil && backend.KindOf(err) != backend.KindDecode {
		// Request could not even be built.
		st.Failure = model.FailureTransport
		st.Label = LabelConnectionFailed
		return st, err
	}

	// Any 2xx means the backend is up, even with an unreadable body.
	st.Connected = true
	st.Label = LabelConnected

	var body statusResponse
	if err == nil && len(raw) > 0 && json.Unmarshal(raw, &body) == nil && body.TelegramConnected != nil {
		st.Telegram = body.TelegramConnected
		if !*body.TelegramConnected {
			st.Label = LabelTelegramOffline
		}
	}

	return st, nil
}

// Probe is the fail-soft form of Check. It never fails; each failure
// class is logged at its own level.
func (p *Prober) Probe(ctx context.Context) model.ConnectionStatus {
	st, err := p.Check(ctx)
	switch {
	case backend.IsCanceled(err):
		p.logger.Debug().Err(err).Msg("status check canceled")
	case st.Failure == model.FailureHTTP:
		p.logger.Warn().Int("status", st.HTTPStatus).Msg("backend returned an error status")
	case st.Failure == model.FailureTransport:
		p.logger.Error().Err(err).Msg("backend unreachable")
	default:
		p.logger.Debug().Str("label", st.Label).Msg("backend reachable")
	}
	return st
}
