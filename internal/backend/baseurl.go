package backend

import (
	"net/url"
	"os"
	"strings"
)

// DefaultBaseURL is used when no usable URL file is found.
const DefaultBaseURL = "https://tgift-backend.onrender.com"

// ResolveBaseURL reads a plain-text backend URL from path. Any failure
// (missing file, empty content, not an absolute http(s) URL) falls back
// to DefaultBaseURL. It is called once at startup.
func ResolveBaseURL(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultBaseURL
	}
	if u, ok := NormalizeBaseURL(string(data)); ok {
		return u
	}
	return DefaultBaseURL
}

// NormalizeBaseURL trims whitespace and trailing slashes and checks that
// raw is an absolute http or https URL.
func NormalizeBaseURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	// Only the first line counts; editors like to append newlines.
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.TrimRight(s, "/")
	if s == "" {
		return "", false
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return s, true
}
