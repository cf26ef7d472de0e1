package rest

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
)

// Wire DTOs. Field names follow the frontend's camelCase convention.

type qaItemPayload struct {
	ID       int64  `json:"id,omitempty"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	AudioURL string `json:"audioUrl,omitempty"`
	Position int32  `json:"position,omitempty"`
}

type lessonPayload struct {
	Title       string          `json:"title" binding:"required"`
	Stage       int32           `json:"stage,omitempty"`
	Description string          `json:"description,omitempty"`
	Position    int32           `json:"position,omitempty"`
	Items       []qaItemPayload `json:"items"`
}

type lessonResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Stage       int32           `json:"stage"`
	Description string          `json:"description,omitempty"`
	Position    int32           `json:"position"`
	Items       []qaItemPayload `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type listResponse[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

func toLessonPayload(lesson *entity.Lesson) lessonResponse {
	return lessonResponse{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Stage:       lesson.Stage,
		Description: lesson.Description,
		Position:    lesson.Position,
		Items: lo.Map(lesson.Items, func(item entity.QAItem, _ int) qaItemPayload {
			return qaItemPayload{
				ID:       item.ID,
				Question: item.Question,
				Answer:   item.Answer,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}
}

func (p *lessonPayload) toEntity() *entity.Lesson {
	lesson := &entity.Lesson{
		Title:       p.Title,
		Stage:       p.Stage,
		Description: p.Description,
		Position:    p.Position,
	}
	// A missing items field keeps the stored items; an empty list
	// clears them.
	if p.Items == nil {
		return lesson
	}
	lesson.Items = lo.Map(p.Items, func(item qaItemPayload, _ int) entity.QAItem {
		return entity.QAItem{
			ID:       item.ID,
			Question: item.Question,
			Answer:   item.Answer,
			AudioURL: item.AudioURL,
			Position: item.Position,
		}
	})
	return lesson
}

type collectWordPayload struct {
	Term        string `json:"term" binding:"required"`
	Language    string `json:"language,omitempty"`
	Translation string `json:"translation,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type reviewWordPayload struct {
	Correct *bool  `json:"correct,omitempty"`
	Quality *int32 `json:"quality,omitempty"`
}

type wordResponse struct {
	ID           int64      `json:"id"`
	Term         string     `json:"term"`
	Language     string     `json:"language"`
	Translation  string     `json:"translation,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Level        int32      `json:"level"`
	CorrectCount int32      `json:"correctCount"`
	TotalCount   int32      `json:"totalCount"`
	LastReviewAt *time.Time `json:"lastReviewAt,omitempty"`
	NextReviewAt *time.Time `json:"nextReviewAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toWordPayload(word *entity.Word) wordResponse {
	return wordResponse{
		ID:           word.ID,
		Term:         word.Term,
		Language:     word.Language.Code(),
		Translation:  word.Translation,
		Notes:        word.Notes,
		Level:        word.Level,
		CorrectCount: word.CorrectCount,
		TotalCount:   word.TotalCount,
		LastReviewAt: word.LastReviewAt,
		NextReviewAt: word.NextReviewAt,
		CreatedAt:    word.CreatedAt,
	}
}

type practiceAttemptPayload struct {
	ItemID  int64  `json:"itemId" binding:"required"`
	Mode    string `json:"mode" binding:"required"`
	Correct bool   `json:"correct"`
}

type modeSummaryPayload struct {
	Total    int32 `json:"total"`
	Correct  int32 `json:"correct"`
	Accuracy int32 `json:"accuracy"`
}

type shadowingSummaryPayload struct {
	Total     int32 `json:"total"`
	Practiced int32 `json:"practiced"`
}

type byModePayload struct {
	QA        modeSummaryPayload      `json:"qa"`
	Shadowing shadowingSummaryPayload `json:"shadowing"`
	Dictation modeSummaryPayload      `json:"dictation"`
}

type practiceSummaryResponse struct {
	TotalLessons     int32         `json:"totalLessons"`
	CompletedLessons int32         `json:"completedLessons"`
	TotalQAItems     int32         `json:"totalQAItems"`
	PracticedQAItems int32         `json:"practicedQAItems"`
	ByMode           byModePayload `json:"byMode"`
	StreakDays       int32         `json:"streakDays"`
}

func toPracticeSummaryPayload(s *entity.PracticeSummary) practiceSummaryResponse {
	return practiceSummaryResponse{
		TotalLessons:     s.TotalLessons,
		CompletedLessons: s.CompletedLessons,
		TotalQAItems:     s.TotalQAItems,
		PracticedQAItems: s.PracticedQAItems,
		ByMode: byModePayload{
			QA:        modeSummaryPayload(s.QA),
			Shadowing: shadowingSummaryPayload(s.Shadowing),
			Dictation: modeSummaryPayload(s.Dictation),
		},
		StreakDays: s.StreakDays,
	}
}

type lessonProgressResponse struct {
	LessonID       int64                         `json:"lessonId"`
	Title          string                        `json:"title"`
	TotalItems     int32                         `json:"totalItems"`
	PracticedItems int32                         `json:"practicedItems"`
	Completed      bool                          `json:"completed"`
	ByMode         map[string]modeSummaryPayload `json:"byMode"`
}

func toLessonProgressPayload(p entity.LessonProgress) lessonProgressResponse {
	byMode := make(map[string]modeSummaryPayload, len(p.Modes))
	for mode, stats := range p.Modes {
		byMode[string(mode)] = modeSummaryPayload(stats)
	}
	return lessonProgressResponse{
		LessonID:       p.LessonID,
		Title:          p.Title,
		TotalItems:     p.TotalItems,
		PracticedItems: p.PracticedItems,
		Completed:      p.Completed,
		ByMode:         byMode,
	}
}

type listeningQuestionPayload struct {
	ID          int64    `json:"id,omitempty"`
	Prompt      string   `json:"prompt" binding:"required"`
	Options     []string `json:"options" binding:"required"`
	AnswerIndex int32    `json:"answerIndex"`
	Position    int32    `json:"position,omitempty"`
}

type passagePayload struct {
	Title      string                     `json:"title" binding:"required"`
	Level      int32                      `json:"level,omitempty"`
	AudioURL   string                     `json:"audioUrl,omitempty"`
	Transcript string                     `json:"transcript,omitempty"`
	Questions  []listeningQuestionPayload `json:"questions"`
}

type passageResponse struct {
	ID         int64                      `json:"id"`
	Title      string                     `json:"title"`
	Level      int32                      `json:"level"`
	AudioURL   string                     `json:"audioUrl,omitempty"`
	Transcript string                     `json:"transcript,omitempty"`
	Questions  []listeningQuestionPayload `json:"questions"`
	CreatedAt  time.Time                  `json:"createdAt"`
}

func (p *passagePayload) toEntity() *entity.Passage {
	return &entity.Passage{
		Title:      p.Title,
		Level:      p.Level,
		AudioURL:   p.AudioURL,
		Transcript: p.Transcript,
		Questions: lo.Map(p.Questions, func(q listeningQuestionPayload, _ int) entity.ListeningQuestion {
			return entity.ListeningQuestion{
				ID:          q.ID,
				Prompt:      q.Prompt,
				Options:     q.Options,
				AnswerIndex: q.AnswerIndex,
				Position:    q.Position,
			}
		}),
	}
}

func toPassagePayload(passage *entity.Passage) passageResponse {
	return passageResponse{
		ID:         passage.ID,
		Title:      passage.Title,
		Level:      passage.Level,
		AudioURL:   passage.AudioURL,
		Transcript: passage.Transcript,
		Questions: lo.Map(passage.Questions, func(q entity.ListeningQuestion, _ int) listeningQuestionPayload {
			return listeningQuestionPayload{
				ID:          q.ID,
				Prompt:      q.Prompt,
				Options:     q.Options,
				AnswerIndex: q.AnswerIndex,
				Position:    q.Position,
			}
		}),
		CreatedAt: passage.CreatedAt,
	}
}

type listeningAnswerPayload struct {
	QuestionID int64 `json:"questionId" binding:"required"`
	Correct    bool  `json:"correct"`
}

type listeningSummaryResponse struct {
	TotalPassages     int32 `json:"totalPassages"`
	CompletedPassages int32 `json:"completedPassages"`
	TotalQuestions    int32 `json:"totalQuestions"`
	AnsweredQuestions int32 `json:"answeredQuestions"`
	CorrectAnswers    int32 `json:"correctAnswers"`
	Accuracy          int32 `json:"accuracy"`
}

type soundChangeItemPayload struct {
	ID       int64  `json:"id,omitempty"`
	Written  string `json:"written" binding:"required"`
	Spoken   string `json:"spoken" binding:"required"`
	AudioURL string `json:"audioUrl,omitempty"`
	Position int32  `json:"position,omitempty"`
}

type categoryPayload struct {
	Name        string                   `json:"name" binding:"required"`
	Kind        string                   `json:"kind" binding:"required"`
	Description string                   `json:"description,omitempty"`
	Items       []soundChangeItemPayload `json:"items"`
}

type categoryResponse struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Kind        string                   `json:"kind"`
	Description string                   `json:"description,omitempty"`
	Items       []soundChangeItemPayload `json:"items"`
	CreatedAt   time.Time                `json:"createdAt"`
}

func (p *categoryPayload) toEntity() *entity.SoundChangeCategory {
	return &entity.SoundChangeCategory{
		Name:        p.Name,
		Kind:        entity.ParseSoundChangeKind(p.Kind),
		Description: p.Description,
		Items: lo.Map(p.Items, func(item soundChangeItemPayload, _ int) entity.SoundChangeItem {
			return entity.SoundChangeItem{
				ID:       item.ID,
				Written:  item.Written,
				Spoken:   item.Spoken,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
	}
}

func toCategoryPayload(category *entity.SoundChangeCategory) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Kind:        string(category.Kind),
		Description: category.Description,
		Items: lo.Map(category.Items, func(item entity.SoundChangeItem, _ int) soundChangeItemPayload {
			return soundChangeItemPayload{
				ID:       item.ID,
				Written:  item.Written,
				Spoken:   item.Spoken,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
		CreatedAt: category.CreatedAt,
	}
}

type soundChangeAttemptPayload struct {
	ItemID  int64 `json:"itemId" binding:"required"`
	Correct bool  `json:"correct"`
}

type soundChangeSummaryResponse struct {
	TotalCategories     int32 `json:"totalCategories"`
	CompletedCategories int32 `json:"completedCategories"`
	TotalItems          int32 `json:"totalItems"`
	PracticedItems      int32 `json:"practicedItems"`
	Accuracy            int32 `json:"accuracy"`
}
