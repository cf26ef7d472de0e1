package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/stats"
)

// ListeningUsecase manages listening passages and comprehension progress.
type ListeningUsecase interface {
	CreatePassage(ctx context.Context, passage *entity.Passage) (*entity.Passage, error)
	GetPassage(ctx context.Context, id int64) (*entity.Passage, error)
	ListPassages(ctx context.Context, query *repository.ListPassageQuery) ([]entity.Passage, int64, error)
	DeletePassage(ctx context.Context, id int64) error
	RecordAnswer(ctx context.Context, userID, questionID int64, correct bool) error
	Summary(ctx context.Context, userID int64) (*entity.ListeningSummary, error)
}

// NewListeningUsecase wires the repositories with default behaviour.
func NewListeningUsecase(passages repository.PassageRepository, progress repository.ListeningRepository) ListeningUsecase {
	return &listeningUsecase{
		passages: passages,
		progress: progress,
		clock:    time.Now,
	}
}

type listeningUsecase struct {
	passages repository.PassageRepository
	progress repository.ListeningRepository
	clock    func() time.Time
}

func (u *listeningUsecase) CreatePassage(ctx context.Context, passage *entity.Passage) (*entity.Passage, error) {
	if passage == nil || strings.TrimSpace(passage.Title) == "" {
		return nil, entity.ErrInvalidPassageTitle
	}
	copy := *passage
	copy.Normalize(u.clock())
	return u.passages.Create(ctx, &copy)
}

func (u *listeningUsecase) GetPassage(ctx context.Context, id int64) (*entity.Passage, error) {
	if id <= 0 {
		return nil, entity.ErrPassageNotFound
	}
	return u.passages.GetByID(ctx, id)
}

func (u *listeningUsecase) ListPassages(ctx context.Context, query *repository.ListPassageQuery) ([]entity.Passage, int64, error) {
	return u.passages.List(ctx, query)
}

func (u *listeningUsecase) DeletePassage(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrPassageNotFound
	}
	return u.passages.Delete(ctx, id)
}

func (u *listeningUsecase) RecordAnswer(ctx context.Context, userID, questionID int64, correct bool) error {
	if userID <= 0 {
		return entity.ErrInvalidUserID
	}

	question, err := u.passages.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	rec := &entity.ListeningRecord{
		UserID:         userID,
		PassageID:      question.PassageID,
		QuestionID:     question.ID,
		TotalCount:     1,
		LastAnsweredAt: u.clock(),
	}
	if correct {
		rec.CorrectCount = 1
	}
	return u.progress.RecordAnswer(ctx, rec)
}

func (u *listeningUsecase) Summary(ctx context.Context, userID int64) (*entity.ListeningSummary, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}

	passages, err := u.passages.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	records, err := u.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	units := lo.Map(passages, func(p entity.Passage, _ int) stats.Unit {
		return stats.Unit{ID: p.ID, ItemIDs: p.QuestionIDs()}
	})
	rows := lo.Map(records, func(r entity.ListeningRecord, _ int) stats.Record {
		return stats.Record{ItemID: r.QuestionID, Correct: r.CorrectCount, Total: r.TotalCount}
	})

	agg := stats.Summarize(units, rows)
	return &entity.ListeningSummary{
		TotalPassages:     agg.TotalUnits,
		CompletedPassages: agg.CompletedUnits,
		TotalQuestions:    agg.TotalItems,
		AnsweredQuestions: agg.PracticedItems,
		CorrectAnswers:    agg.Correct,
		Accuracy:          agg.Accuracy,
	}, nil
}
