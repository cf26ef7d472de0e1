package entity

import (
	"strings"
	"time"
)

// Lesson groups the Q&A items drilled together in one Callan session.
type Lesson struct {
	ID          int64
	Title       string
	Stage       int32
	Description string
	Position    int32
	Items       []QAItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// QAItem is a single question/answer pair belonging to exactly one lesson.
type QAItem struct {
	ID       int64
	LessonID int64
	Question string
	Answer   string
	AudioURL string
	Position int32
}

// Normalize ensures defaults & constraints before persistence.
func (l *Lesson) Normalize(now time.Time) {
	l.Title = strings.TrimSpace(l.Title)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	if l.Items == nil {
		l.Items = []QAItem{}
	}
	for i := range l.Items {
		l.Items[i].Question = strings.TrimSpace(l.Items[i].Question)
		l.Items[i].Answer = strings.TrimSpace(l.Items[i].Answer)
		if l.Items[i].Position == 0 {
			l.Items[i].Position = int32(i + 1)
		}
	}
}

// ItemIDs returns the identifiers of the lesson's items in order.
func (l *Lesson) ItemIDs() []int64 {
	ids := make([]int64, 0, len(l.Items))
	for _, item := range l.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
