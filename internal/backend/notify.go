package backend

import (
	"context"
	"time"

	"github.com/nhle/tgift/internal/model"
)

// Backend API paths.
const (
	PathStatus         = "/status"
	PathNotifications  = "/notifications"
	PathNotify         = "/notify"
	PathRegisterDevice = "/register-device"
)

// TestChannelID tags alerts produced by the test trigger.
const TestChannelID = "test"

// TestNotification builds the alert sent by the test trigger. It only
// exercises push delivery: its text carries no "news" tag, so the feed
// filter keeps it out of the alert list.
func TestNotification(title, message string, now time.Time) model.Notification {
	return model.Notification{
		Headline:  title,
		Message:   message,
		Timestamp: now.UTC().Format(time.RFC3339),
		ChannelID: TestChannelID,
	}
}

// notifyRequest is the body of POST /notify.
type notifyRequest struct {
	Headline  string `json:"headline"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	ChannelID string `json:"channel_id"`
}

// SendTestNotification asks the backend to push n to registered devices.
// A {"detail": ...} error body is carried in the returned *Error.
func (c *Client) SendTestNotification(ctx context.Context, n model.Notification) error {
	channel := n.ChannelID
	if channel == "" {
		channel = TestChannelID
	}

	req := notifyRequest{
		Headline:  n.Headline,
		Message:   n.Message,
		Timestamp: n.Timestamp,
		ChannelID: channel,
	}

	var resp map[string]interface{}
	return c.Post(ctx, PathNotify, req, &resp)
}
