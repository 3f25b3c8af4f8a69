package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/logging"
	"github.com/nhle/tgift/internal/store"
)

// maxRetries bounds registration attempts after the first one.
const maxRetries = 3

// unknownName labels a device whose host name cannot be read.
const unknownName = "Unknown Device"

// Device is an entry in the local registered-devices list.
type Device struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Result describes a registration attempt.
type Result struct {
	DeviceID string
	Token    string

	// Skipped is set when the token was a sentinel and nothing was sent.
	Skipped bool
}

// registerRequest is the body of POST /register-device.
type registerRequest struct {
	ExpoPushToken string `json:"expo_push_token"`
	DeviceID      string `json:"device_id"`
}

// Registrar registers this device with the backend.
type Registrar struct {
	client *backend.Client
	kv     store.KV
	token  TokenFunc
	logger zerolog.Logger

	hostname   func() (string, error)
	now        func() time.Time
	newBackOff func() backoff.BackOff
}

// NewRegistrar creates a Registrar.
func NewRegistrar(client *backend.Client, kv store.KV, token TokenFunc, logger zerolog.Logger) *Registrar {
	return &Registrar{
		client:   client,
		kv:       kv,
		token:    token,
		logger:   logging.Component(logger, "device"),
		hostname: os.Hostname,
		now:      time.Now,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// DeviceID returns the persisted installation id, creating one on first
// use.
func (r *Registrar) DeviceID(ctx context.Context) (string, error) {
	id, err := r.kv.Get(ctx, store.KeyDeviceID)
	if err == nil && id != "" {
		return id, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("reading device id: %w", err)
	}

	id = uuid.NewString()
	if err := r.kv.Set(ctx, store.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("saving device id: %w", err)
	}
	return id, nil
}

// Register sends the push token and device id to the backend. Sentinel
// tokens are not sent. Transport failures and 5xx responses are retried
// with exponential backoff; other failures are returned at once.
func (r *Registrar) Register(ctx context.Context) (Result, error) {
	id, err := r.DeviceID(ctx)
	if err != nil {
		return Result{}, err
	}

	token := r.token(ctx)
	res := Result{DeviceID: id, Token: token}
	if IsSentinel(token) {
		r.logger.Info().Str("token", token).Msg("push token unavailable, skipping registration")
		res.Skipped = true
		return res, nil
	}

	req := registerRequest{ExpoPushToken: token, DeviceID: id}
	attempt := 0
	op := func() error {
		attempt++
		err := r.client.Post(ctx, backend.PathRegisterDevice, req, nil)
		if err == nil {
			return nil
		}
		if backend.IsTransport(err) || backend.StatusCode(err) >= 500 {
			r.logger.Warn().Err(err).Int("attempt", attempt).Msg("registering device")
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return res, fmt.Errorf("registering device: %w", err)
	}

	if err := r.remember(ctx, id); err != nil {
		return res, err
	}

	r.logger.Info().Str("device_id", id).Msg("device registered")
	return res, nil
}

// Devices returns the locally recorded registrations, oldest first. A
// corrupt list reads as empty.
func (r *Registrar) Devices(ctx context.Context) ([]Device, error) {
	raw, err := r.kv.Get(ctx, store.KeyDevices)
	if errors.Is(err, store.ErrNotFound) {
		return []Device{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading devices: %w", err)
	}

	var devices []Device
	if err := json.Unmarshal([]byte(raw), &devices); err != nil {
		r.logger.Warn().Err(err).Msg("stored device list is corrupt")
		return []Device{}, nil
	}
	if devices == nil {
		devices = []Device{}
	}
	return devices, nil
}

// remember records id in the device list, refreshing the entry if it is
// already there.
func (r *Registrar) remember(ctx context.Context, id string) error {
	devices, err := r.Devices(ctx)
	if err != nil {
		return err
	}

	name, err := r.hostname()
	if err != nil || name == "" {
		name = unknownName
	}
	entry := Device{ID: id, Name: name, RegisteredAt: r.now().UTC()}

	replaced := false
	for i := range devices {
		if devices[i].ID == id {
			devices[i] = entry
			replaced = true
		}
	}
	if !replaced {
		devices = append(devices, entry)
	}

	data, err := json.Marshal(devices)
	if err != nil {
		return fmt.Errorf("encoding devices: %w", err)
	}
	if err := r.kv.Set(ctx, store.KeyDevices, string(data)); err != nil {
		return fmt.Errorf("saving devices: %w", err)
	}
	return nil
}
