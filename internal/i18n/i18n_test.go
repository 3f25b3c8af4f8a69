package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range tables[English] {
		assert.Contains(t, tables[Russian], key)
	}
	for key := range tables[Russian] {
		assert.Contains(t, tables[English], key)
	}
}

func TestT_Fallbacks(t *testing.T) {
	ru := New(Russian)
	assert.Equal(t, "Настройки", ru.T("settings"))
	assert.Equal(t, "noSuchKey", ru.T("noSuchKey"))

	en := New("de")
	assert.Equal(t, English, en.Language())
	assert.Equal(t, "Settings", en.T("settings"))
}

func TestT_Placeholders(t *testing.T) {
	tr := New(English)
	assert.Equal(t, "Next refresh in: 5 seconds", tr.T("nextRefresh", Vars{"seconds": 5}))
	assert.Equal(t, "Next refresh in: {seconds} seconds", tr.T("nextRefresh"))
	assert.Equal(t, "Failed to send: boom", tr.T("testNotificationError", Vars{"error": "boom"}))
}

func TestFormat_KeepsUnknownPlaceholders(t *testing.T) {
	assert.Equal(t, "a 1 {b}", Format("a {a} {b}", Vars{"a": 1}))
	assert.Equal(t, "{x}", Format("{x}", nil))
}

func TestRussianPlural(t *testing.T) {
	forms := [3]string{"one", "few", "many"}
	tests := map[int]string{
		0: "many", 1: "one", 2: "few", 4: "few", 5: "many",
		11: "many", 12: "many", 14: "many", 21: "one", 22: "few",
		101: "one", 111: "many", 112: "many", 122: "few",
	}
	for n, want := range tests {
		assert.Equal(t, want, RussianPlural(n, forms), n)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		lang string
		ago  time.Duration
		want string
	}{
		{English, 10 * time.Minute, "Just now"},
		{English, time.Hour, "1 hour ago"},
		{English, 5 * time.Hour, "5 hours ago"},
		{English, 24 * time.Hour, "1 day ago"},
		{English, 72 * time.Hour, "3 days ago"},
		{Russian, 30 * time.Minute, "Только что"},
		{Russian, time.Hour, "1 час назад"},
		{Russian, 3 * time.Hour, "3 часа назад"},
		{Russian, 11 * time.Hour, "11 часов назад"},
		{Russian, 21 * time.Hour, "21 час назад"},
		{Russian, 24 * time.Hour, "1 день назад"},
		{Russian, 48 * time.Hour, "2 дня назад"},
		{Russian, 5 * 24 * time.Hour, "5 дней назад"},
		{English, -time.Hour, "Just now"},
	}
	for _, tt := range tests {
		t.Run(tt.lang+" "+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.lang).RelativeTime(now.Add(-tt.ago), now))
		})
	}

	assert.Equal(t, "Just now", New(English).RelativeTime(time.Time{}, now))
}

func TestMatch(t *testing.T) {
	tests := map[string]string{
		"":            English,
		"C":           English,
		"ru":          Russian,
		"ru-RU":       Russian,
		"ru_RU.UTF-8": Russian,
		"en_US.UTF-8": English,
		"en-GB":       English,
		"fr-FR":       English,
		"garbage!!":   English,
	}
	for in, want := range tests {
		assert.Equal(t, want, Match(in), in)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("ru"))
	assert.False(t, Supported("de"))
	assert.Equal(t, []string{English, Russian}, Languages())
}
