package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/stats"
)

// PracticeUsecase records Callan drilling attempts and serves the
// progress views built from them.
type PracticeUsecase interface {
	RecordAttempt(ctx context.Context, userID, itemID int64, mode entity.PracticeMode, correct bool) error
	LessonProgress(ctx context.Context, userID int64) ([]entity.LessonProgress, error)
	Summary(ctx context.Context, userID int64) (*entity.PracticeSummary, error)
}

// NewPracticeUsecase wires the repositories with default behaviour.
func NewPracticeUsecase(lessons repository.LessonRepository, practice repository.PracticeRepository) PracticeUsecase {
	return &practiceUsecase{
		lessons:  lessons,
		practice: practice,
		clock:    time.Now,
	}
}

type practiceUsecase struct {
	lessons  repository.LessonRepository
	practice repository.PracticeRepository
	clock    func() time.Time
}

func (u *practiceUsecase) RecordAttempt(ctx context.Context, userID, itemID int64, mode entity.PracticeMode, correct bool) error {
	if userID <= 0 {
		return entity.ErrInvalidUserID
	}
	if !mode.Valid() {
		return entity.ErrInvalidPracticeMode
	}

	item, err := u.lessons.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	rec := &entity.PracticeRecord{
		UserID:          userID,
		LessonID:        item.LessonID,
		ItemID:          item.ID,
		Mode:            mode,
		TotalCount:      1,
		LastPracticedAt: u.clock(),
	}
	if correct {
		rec.CorrectCount = 1
	}
	return u.practice.RecordAttempt(ctx, rec)
}

func (u *practiceUsecase) LessonProgress(ctx context.Context, userID int64) ([]entity.LessonProgress, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}

	lessons, err := u.lessons.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	records, err := u.practice.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byLesson := lo.GroupBy(records, func(r entity.PracticeRecord) int64 { return r.LessonID })

	progress := make([]entity.LessonProgress, 0, len(lessons))
	for _, lesson := range lessons {
		recs := byLesson[lesson.ID]
		practiced := lo.UniqBy(recs, func(r entity.PracticeRecord) int64 { return r.ItemID })

		modes := make(map[entity.PracticeMode]entity.ModeStats, len(entity.PracticeModes))
		for _, mode := range entity.PracticeModes {
			var total, correct int32
			for _, r := range recs {
				if r.Mode != mode {
					continue
				}
				total += r.TotalCount
				correct += r.CorrectCount
			}
			modes[mode] = entity.ModeStats{
				Total:    total,
				Correct:  correct,
				Accuracy: stats.Percent(correct, total),
			}
		}

		progress = append(progress, entity.LessonProgress{
			LessonID:       lesson.ID,
			Title:          lesson.Title,
			TotalItems:     int32(len(lesson.Items)),
			PracticedItems: int32(len(practiced)),
			Completed:      len(lesson.Items) > 0 && len(practiced) == len(lesson.Items),
			Modes:          modes,
		})
	}
	return progress, nil
}

func (u *practiceUsecase) Summary(ctx context.Context, userID int64) (*entity.PracticeSummary, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}

	lessons, err := u.lessons.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	records, err := u.practice.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	units := lo.Map(lessons, func(l entity.Lesson, _ int) stats.Unit {
		return stats.Unit{ID: l.ID, ItemIDs: l.ItemIDs()}
	})
	rows := lo.Map(records, func(r entity.PracticeRecord, _ int) stats.Record {
		return stats.Record{ItemID: r.ItemID, Mode: r.Mode, Correct: r.CorrectCount, Total: r.TotalCount}
	})
	stamps := lo.Map(records, func(r entity.PracticeRecord, _ int) *time.Time {
		at := r.LastPracticedAt
		return &at
	})

	agg := stats.Summarize(units, rows)
	qa := agg.ByMode[entity.ModeQA]
	shadowing := agg.ByMode[entity.ModeShadowing]
	dictation := agg.ByMode[entity.ModeDictation]

	return &entity.PracticeSummary{
		TotalLessons:     agg.TotalUnits,
		CompletedLessons: agg.CompletedUnits,
		TotalQAItems:     agg.TotalItems,
		PracticedQAItems: agg.PracticedItems,
		QA:               entity.ModeSummary{Total: qa.Total, Correct: qa.Correct, Accuracy: qa.Accuracy},
		// Shadowing has no correctness judgement; both fields carry the
		// raw attempt volume, matching the established response shape.
		Shadowing:  entity.ShadowingSummary{Total: shadowing.Total, Practiced: shadowing.Total},
		Dictation:  entity.ModeSummary{Total: dictation.Total, Correct: dictation.Correct, Accuracy: dictation.Accuracy},
		StreakDays: int32(stats.StreakDays(u.clock(), stamps)),
	}, nil
}
