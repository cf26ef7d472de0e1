package entity

import (
	"strings"
	"time"
)

// Passage is a listening comprehension text with its recorded audio and
// multiple-choice questions.
type Passage struct {
	ID         int64
	Title      string
	Level      int32
	AudioURL   string
	Transcript string
	Questions  []ListeningQuestion
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListeningQuestion is one multiple-choice question about a passage.
type ListeningQuestion struct {
	ID          int64
	PassageID   int64
	Prompt      string
	Options     []string
	AnswerIndex int32
	Position    int32
}

// ListeningRecord accumulates one user's attempts on one question.
// Unique per (user, question); incremented atomically at the store.
type ListeningRecord struct {
	ID             int64
	UserID         int64
	PassageID      int64
	QuestionID     int64
	CorrectCount   int32
	TotalCount     int32
	LastAnsweredAt time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (p *Passage) Normalize(now time.Time) {
	p.Title = strings.TrimSpace(p.Title)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Questions == nil {
		p.Questions = []ListeningQuestion{}
	}
	for i := range p.Questions {
		p.Questions[i].Prompt = strings.TrimSpace(p.Questions[i].Prompt)
		if p.Questions[i].Options == nil {
			p.Questions[i].Options = []string{}
		}
		if p.Questions[i].Position == 0 {
			p.Questions[i].Position = int32(i + 1)
		}
	}
}

// QuestionIDs returns the identifiers of the passage's questions in order.
func (p *Passage) QuestionIDs() []int64 {
	ids := make([]int64, 0, len(p.Questions))
	for _, q := range p.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}
