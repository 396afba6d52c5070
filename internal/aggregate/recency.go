// Package aggregate holds the windowing, grouping and ratio helpers shared
// by the market and personal score engines.
package aggregate

import "time"

// Default recency windows in days
const (
	ActiveProfileDays = 30
	CertTrendDays     = 730
)

// Years returns the whole calendar years elapsed from start to end: the
// largest n with start+n years <= end. Negative spans round down.
func Years(start, end time.Time) int {
	n := end.Year() - start.Year()
	if start.AddDate(n, 0, 0).After(end) {
		n--
	}
	return n
}

// FilterByRecency keeps the rows whose date is on or after now minus
// cutoffDays. Rows with a nil date are dropped.
func FilterByRecency[T any](rows []T, date func(T) *time.Time, cutoffDays int, now time.Time) []T {
	threshold := now.Add(-time.Duration(cutoffDays) * 24 * time.Hour)

	var out []T
	for _, r := range rows {
		d := date(r)
		if d == nil || d.Before(threshold) {
			continue
		}
		out = append(out, r)
	}
	return out
}
