// Package stats computes progress aggregates: the practice streak and
// the catalog-wide summaries served by the progress endpoints. All
// functions are pure; aggregates are recomputed on every request and
// never persisted.
package stats

import (
	"sort"
	"time"
)

// StreakDays counts the consecutive calendar days, ending today or
// yesterday in now's time zone, on which at least one practice event
// occurred. Nil timestamps are ignored; duplicate same-day events
// collapse to a single day. A call straddling local midnight can see
// the day boundary move between requests; that is inherent to
// wall-clock day bucketing.
func StreakDays(now time.Time, timestamps []*time.Time) int {
	loc := now.Location()
	seen := make(map[time.Time]struct{})
	for _, ts := range timestamps {
		if ts == nil {
			continue
		}
		seen[dayOf(ts.In(loc))] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now)
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	expected := days[0].AddDate(0, 0, -1)
	for _, day := range days[1:] {
		if !day.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
