// Package i18n holds the English and Russian string tables and the
// helpers that format them.
package i18n

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Supported language codes.
const (
	English = "en"
	Russian = "ru"
)

// DefaultLanguage is used when nothing else matches.
const DefaultLanguage = English

var supportedTags = []language.Tag{language.English, language.Russian}

var supportedCodes = []string{English, Russian}

var matcher = language.NewMatcher(supportedTags)

// Supported reports whether code names a bundled language.
func Supported(code string) bool {
	_, ok := tables[code]
	return ok
}

// Languages lists the bundled language codes.
func Languages() []string {
	out := make([]string, len(supportedCodes))
	copy(out, supportedCodes)
	return out
}

// Match maps a locale string such as "ru-RU" or "en_US.UTF-8" onto a
// supported language code, falling back to English.
func Match(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return DefaultLanguage
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLanguage
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return supportedCodes[idx]
}

// Vars are placeholder values for T.
type Vars map[string]any

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Format replaces {name} placeholders with values from vars. Unknown
// placeholders are left as written.
func Format(template string, vars Vars) string {
	if len(vars) == 0 {
		return template
	}
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		v, ok := vars[m[1:len(m)-1]]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}

// RussianPlural picks the one/few/many form for n.
func RussianPlural(n int, forms [3]string) string {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100

	switch {
	case mod10 == 1 && mod100 != 11:
		return forms[0]
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 10 || mod100 >= 20):
		return forms[1]
	default:
		return forms[2]
	}
}

// Translator resolves keys in one language.
type Translator struct {
	lang string
}

// New returns a Translator for code; unsupported codes use English.
func New(code string) *Translator {
	t := &Translator{}
	t.SetLanguage(code)
	return t
}

// Language returns the active language code.
func (t *Translator) Language() string {
	return t.lang
}

// SetLanguage switches the active language. Unsupported codes select
// English.
func (t *Translator) SetLanguage(code string) {
	if !Supported(code) {
		code = DefaultLanguage
	}
	t.lang = code
}

// T looks up key in the active language, then English, then returns the
// key itself, and fills placeholders from vars.
func (t *Translator) T(key string, vars ...Vars) string {
	s, ok := tables[t.lang][key]
	if !ok {
		s, ok = tables[DefaultLanguage][key]
	}
	if !ok {
		s = key
	}

	merged := Vars{}
	for _, v := range vars {
		for k, val := range v {
			merged[k] = val
		}
	}
	return Format(s, merged)
}

// RelativeTime renders how long ago ts was, relative to now. Unparseable
// (zero) times and times in the future read as "just now".
func (t *Translator) RelativeTime(ts, now time.Time) string {
	if ts.IsZero() {
		return t.T("justNow")
	}

	hours := int(now.Sub(ts) / time.Hour)
	days := hours / 24

	switch {
	case days > 0:
		return t.T("daysAgo", Vars{"days": days, "plural": t.plural(days, dayForms)})
	case hours > 0:
		return t.T("hoursAgo", Vars{"hours": hours, "plural": t.plural(hours, hourForms)})
	default:
		return t.T("justNow")
	}
}

// Russian plural fillers for the daysAgo and hoursAgo templates. Days
// take the whole word, hours a suffix on the stem.
var (
	dayForms  = [3]string{"день", "дня", "дней"}
	hourForms = [3]string{"", "а", "ов"}
)

func (t *Translator) plural(n int, ruForms [3]string) string {
	if t.lang == Russian {
		return RussianPlural(n, ruForms)
	}
	if n == 1 {
		return ""
	}
	return "s"
}
