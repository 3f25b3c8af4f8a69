package feed

import (
	"sort"
	"strings"

	"github.com/nhle/tgift/internal/model"
)

// newsMarker distinguishes real gift alerts from test pings.
const newsMarker = "news"

// IsNews reports whether n is a real alert: its message or headline
// contains "news", case-insensitively.
func IsNews(n model.Notification) bool {
	return strings.Contains(strings.ToLower(n.Message), newsMarker) ||
		strings.Contains(strings.ToLower(n.Headline), newsMarker)
}

// Filter returns the records of list that are news alerts.
func Filter(list []model.Notification) []model.Notification {
	out := make([]model.Notification, 0, len(list))
	for _, n := range list {
		if IsNews(n) {
			out = append(out, n)
		}
	}
	return out
}

// Merge concatenates server records ahead of current ones, so server
// records win during deduplication.
func Merge(server, current []model.Notification) []model.Notification {
	out := make([]model.Notification, 0, len(server)+len(current))
	out = append(out, server...)
	return append(out, current...)
}

// Dedupe keeps the first occurrence of each identity key, preserving
// order.
func Dedupe(list []model.Notification) []model.Notification {
	seen := make(map[model.NotificationKey]struct{}, len(list))
	out := make([]model.Notification, 0, len(list))
	for _, n := range list {
		k := n.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SortNewestFirst orders list by parsed timestamp, newest first. Ties
// keep their relative order.
func SortNewestFirst(list []model.Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Time().After(list[j].Time())
	})
}

// Truncate returns at most the first limit records.
func Truncate(list []model.Notification, limit int) []model.Notification {
	if limit >= 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

// Reconcile runs the full pipeline: filter the server records, merge
// them with current, deduplicate, sort newest first, and cap at
// model.MaxCached.
func Reconcile(server, current []model.Notification) []model.Notification {
	merged := Dedupe(Merge(Filter(server), current))
	SortNewestFirst(merged)
	return Truncate(merged, model.MaxCached)
}

// NewCount returns how many records of next are not present in prev.
func NewCount(prev, next []model.Notification) int {
	known := make(map[model.NotificationKey]struct{}, len(prev))
	for _, n := range prev {
		known[n.Key()] = struct{}{}
	}

	count := 0
	for _, n := range next {
		if _, ok := known[n.Key()]; !ok {
			count++
		}
	}
	return count
}
