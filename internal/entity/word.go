package entity

import (
	"strings"
	"time"
)

// Word represents a learner's personal vocabulary entry with its review state.
// Level runs 0-5; the srs package owns the transition and scheduling rules.
type Word struct {
	ID           int64
	UserID       int64
	Term         string
	Language     Language
	Translation  string
	Notes        string
	Level        int32
	CorrectCount int32
	TotalCount   int32
	LastReviewAt *time.Time
	NextReviewAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (w *Word) Normalize(now time.Time) {
	w.Term = strings.TrimSpace(w.Term)
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	if w.Language == "" {
		w.Language = LanguageEnglish
	}
	if w.Level < 0 {
		w.Level = 0
	}
}

// Due reports whether the word should be offered for review at the given moment.
// Words never reviewed are always due.
func (w *Word) Due(now time.Time) bool {
	if w.NextReviewAt == nil {
		return true
	}
	return !w.NextReviewAt.After(now)
}
