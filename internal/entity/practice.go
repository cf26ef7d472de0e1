package entity

import "time"

// PracticeRecord accumulates one user's drilling history for a single
// Q&A item in a single mode. At most one record exists per
// (user, item, mode) tuple; writes go through an atomic upsert so two
// rapid submissions never lose an increment.
type PracticeRecord struct {
	ID              int64
	UserID          int64
	LessonID        int64
	ItemID          int64
	Mode            PracticeMode
	CorrectCount    int32
	TotalCount      int32
	LastPracticedAt time.Time
}

// LessonProgress is the per-lesson practice view: how many of the
// lesson's items have been touched and how the learner scores per mode.
type LessonProgress struct {
	LessonID       int64
	Title          string
	TotalItems     int32
	PracticedItems int32
	Completed      bool
	Modes          map[PracticeMode]ModeStats
}

// ModeStats carries per-mode totals for one lesson or the whole catalog.
type ModeStats struct {
	Total    int32
	Correct  int32
	Accuracy int32
}
