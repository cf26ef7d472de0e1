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

// SoundChangeUsecase manages pronunciation categories and drilling progress.
type SoundChangeUsecase interface {
	CreateCategory(ctx context.Context, category *entity.SoundChangeCategory) (*entity.SoundChangeCategory, error)
	GetCategory(ctx context.Context, id int64) (*entity.SoundChangeCategory, error)
	ListCategories(ctx context.Context, query *repository.ListCategoryQuery) ([]entity.SoundChangeCategory, int64, error)
	DeleteCategory(ctx context.Context, id int64) error
	RecordAttempt(ctx context.Context, userID, itemID int64, correct bool) error
	Summary(ctx context.Context, userID int64) (*entity.SoundChangeSummary, error)
}

// NewSoundChangeUsecase wires the repositories with default behaviour.
func NewSoundChangeUsecase(categories repository.SoundChangeRepository, progress repository.SoundChangeProgressRepository) SoundChangeUsecase {
	return &soundChangeUsecase{
		categories: categories,
		progress:   progress,
		clock:      time.Now,
	}
}

type soundChangeUsecase struct {
	categories repository.SoundChangeRepository
	progress   repository.SoundChangeProgressRepository
	clock      func() time.Time
}

func (u *soundChangeUsecase) CreateCategory(ctx context.Context, category *entity.SoundChangeCategory) (*entity.SoundChangeCategory, error) {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return nil, entity.ErrInvalidCategoryName
	}
	copy := *category
	copy.Normalize(u.clock())
	return u.categories.Create(ctx, &copy)
}

func (u *soundChangeUsecase) GetCategory(ctx context.Context, id int64) (*entity.SoundChangeCategory, error) {
	if id <= 0 {
		return nil, entity.ErrCategoryNotFound
	}
	return u.categories.GetByID(ctx, id)
}

func (u *soundChangeUsecase) ListCategories(ctx context.Context, query *repository.ListCategoryQuery) ([]entity.SoundChangeCategory, int64, error) {
	return u.categories.List(ctx, query)
}

func (u *soundChangeUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrCategoryNotFound
	}
	return u.categories.Delete(ctx, id)
}

func (u *soundChangeUsecase) RecordAttempt(ctx context.Context, userID, itemID int64, correct bool) error {
	if userID <= 0 {
		return entity.ErrInvalidUserID
	}

	item, err := u.categories.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	rec := &entity.SoundChangeRecord{
		UserID:          userID,
		CategoryID:      item.CategoryID,
		ItemID:          item.ID,
		TotalCount:      1,
		LastPracticedAt: u.clock(),
	}
	if correct {
		rec.CorrectCount = 1
	}
	return u.progress.RecordAttempt(ctx, rec)
}

func (u *soundChangeUsecase) Summary(ctx context.Context, userID int64) (*entity.SoundChangeSummary, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}

	categories, err := u.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	records, err := u.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	units := lo.Map(categories, func(c entity.SoundChangeCategory, _ int) stats.Unit {
		return stats.Unit{ID: c.ID, ItemIDs: c.ItemIDs()}
	})
	rows := lo.Map(records, func(r entity.SoundChangeRecord, _ int) stats.Record {
		return stats.Record{ItemID: r.ItemID, Correct: r.CorrectCount, Total: r.TotalCount}
	})

	agg := stats.Summarize(units, rows)
	return &entity.SoundChangeSummary{
		TotalCategories:     agg.TotalUnits,
		CompletedCategories: agg.CompletedUnits,
		TotalItems:          agg.TotalItems,
		PracticedItems:      agg.PracticedItems,
		Accuracy:            agg.Accuracy,
	}, nil
}
