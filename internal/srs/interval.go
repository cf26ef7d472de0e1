// Package srs implements the level-based review scheduling used for
// vocabulary drilling: a fixed interval per mastery level and a
// saturating level transition on each recorded outcome. Everything here
// is a pure function of its arguments.
package srs

import "time"

// MinLevel and MaxLevel bound the mastery scale.
const (
	MinLevel int32 = 0
	MaxLevel int32 = 5
)

// reviewIntervals maps each mastery level to the delay before the next
// review. Levels above the table reuse the last entry: a fully mastered
// word is simply rescheduled at the longest interval, never rejected.
var reviewIntervals = [...]time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
}

// IntervalFor returns the review delay for a mastery level.
// Out-of-range levels fall back to the level-5 interval.
func IntervalFor(level int32) time.Duration {
	if level < MinLevel || int(level) >= len(reviewIntervals) {
		return reviewIntervals[len(reviewIntervals)-1]
	}
	return reviewIntervals[level]
}

// NextReviewAt computes when a word at the given level should next be
// reviewed, counting from now.
func NextReviewAt(level int32, now time.Time) time.Time {
	return now.Add(IntervalFor(level))
}
