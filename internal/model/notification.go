package model

import (
	"strings"
	"time"
)

// Retention limits for the alert list.
const (
	// MaxCached is how many alerts are kept in the local cache.
	MaxCached = 50

	// MaxDisplayed is how many alerts the list view renders.
	MaxDisplayed = 20
)

// DefaultHeadline is shown for alerts that arrive without a headline.
const DefaultHeadline = "Gift Alert"

// Notification is a single gift alert as delivered by the backend.
// Records are never mutated after creation; list updates replace the
// whole slice.
type Notification struct {
	// Headline is the optional short title of the alert.
	Headline string `json:"headline,omitempty" yaml:"headline,omitempty"`

	// Message is the alert body.
	Message string `json:"message" yaml:"message"`

	// Timestamp is the ISO-8601 time the alert was produced.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// ChannelID is the Telegram channel the alert was detected in, if any.
	ChannelID string `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
}

// NotificationKey is the identity of an alert. Two records with the same
// key are the same event.
type NotificationKey struct {
	Timestamp string
	Message   string
	Headline  string
}

// Key returns the identity tuple of n.
func (n Notification) Key() NotificationKey {
	return NotificationKey{
		Timestamp: n.Timestamp,
		Message:   n.Message,
		Headline:  n.Headline,
	}
}

// Title returns the headline, or DefaultHeadline when it is empty.
func (n Notification) Title() string {
	if strings.TrimSpace(n.Headline) == "" {
		return DefaultHeadline
	}
	return n.Headline
}

// timestampLayouts are tried in order when parsing alert timestamps.
// The backend emits naive ISO timestamps from Python, which are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses the alert timestamp. An unparseable timestamp yields the
// zero time so that it sorts as the oldest entry.
func (n Notification) Time() time.Time {
	ts := strings.TrimSpace(n.Timestamp)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
