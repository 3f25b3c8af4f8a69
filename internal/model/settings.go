package model

// Notification sound options.
const (
	SoundDefault = "default"
	SoundSilent  = "silent"
)

// Font size steps, from smallest to largest.
const (
	FontSmall = iota
	FontMedium
	FontLarge
	FontExtraLarge
)

// Settings holds the user-adjustable preferences persisted on the device.
type Settings struct {
	Vibration         bool   `json:"vibration"`
	DarkMode          bool   `json:"darkMode"`
	Animations        bool   `json:"animations"`
	FontSize          int    `json:"fontSize"`
	NotificationSound string `json:"notificationSound"`
}

// DefaultSettings returns the settings used on first start and after a
// reset.
func DefaultSettings() Settings {
	return Settings{
		Vibration:         true,
		DarkMode:          true,
		Animations:        true,
		FontSize:          FontMedium,
		NotificationSound: SoundDefault,
	}
}

// Normalize clamps out-of-range values to valid ones.
func (s Settings) Normalize() Settings {
	if s.FontSize < FontSmall {
		s.FontSize = FontSmall
	}
	if s.FontSize > FontExtraLarge {
		s.FontSize = FontExtraLarge
	}
	if s.NotificationSound != SoundSilent {
		s.NotificationSound = SoundDefault
	}
	return s
}
