package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
)

// The three progress repositories share one write pattern: a
// single-statement upsert whose DO UPDATE arm adds the incoming deltas
// to the stored counters. Two concurrent attempts on the same key both
// land; there is no read-modify-write window.

type practiceRepository struct {
	db *gorm.DB
}

// NewPracticeRepository constructs a gorm-backed drilling progress store.
func NewPracticeRepository(db *gorm.DB) repository.PracticeRepository {
	return &practiceRepository{db: db}
}

func (r *practiceRepository) RecordAttempt(ctx context.Context, rec *entity.PracticeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := practiceRecordRow{
		UserID:          rec.UserID,
		LessonID:        rec.LessonID,
		ItemID:          rec.ItemID,
		Mode:            string(rec.Mode),
		CorrectCount:    rec.CorrectCount,
		TotalCount:      rec.TotalCount,
		LastPracticedAt: rec.LastPracticedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}, {Name: "mode"}},
			DoUpdates: clause.Assignments(map[string]any{
				"correct_count":     gorm.Expr("practice_records.correct_count + excluded.correct_count"),
				"total_count":       gorm.Expr("practice_records.total_count + excluded.total_count"),
				"last_practiced_at": gorm.Expr("excluded.last_practiced_at"),
			}),
		}).
		Create(&row).Error
	return translateError(err, "record practice attempt", nil, nil)
}

func (r *practiceRepository) ListByUser(ctx context.Context, userID int64) ([]entity.PracticeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []practiceRecordRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("lesson_id, item_id, mode").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list practice records", nil, nil)
	}
	records := make([]entity.PracticeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.PracticeRecord{
			ID:              row.ID,
			UserID:          row.UserID,
			LessonID:        row.LessonID,
			ItemID:          row.ItemID,
			Mode:            entity.PracticeMode(row.Mode),
			CorrectCount:    row.CorrectCount,
			TotalCount:      row.TotalCount,
			LastPracticedAt: row.LastPracticedAt,
		})
	}
	return records, nil
}

type listeningProgressRepository struct {
	db *gorm.DB
}

// NewListeningProgressRepository constructs a gorm-backed listening progress store.
func NewListeningProgressRepository(db *gorm.DB) repository.ListeningRepository {
	return &listeningProgressRepository{db: db}
}

func (r *listeningProgressRepository) RecordAnswer(ctx context.Context, rec *entity.ListeningRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := listeningRecordRow{
		UserID:         rec.UserID,
		PassageID:      rec.PassageID,
		QuestionID:     rec.QuestionID,
		CorrectCount:   rec.CorrectCount,
		TotalCount:     rec.TotalCount,
		LastAnsweredAt: rec.LastAnsweredAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"correct_count":    gorm.Expr("listening_records.correct_count + excluded.correct_count"),
				"total_count":      gorm.Expr("listening_records.total_count + excluded.total_count"),
				"last_answered_at": gorm.Expr("excluded.last_answered_at"),
			}),
		}).
		Create(&row).Error
	return translateError(err, "record listening answer", nil, nil)
}

func (r *listeningProgressRepository) ListByUser(ctx context.Context, userID int64) ([]entity.ListeningRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []listeningRecordRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("passage_id, question_id").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list listening records", nil, nil)
	}
	records := make([]entity.ListeningRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.ListeningRecord{
			ID:             row.ID,
			UserID:         row.UserID,
			PassageID:      row.PassageID,
			QuestionID:     row.QuestionID,
			CorrectCount:   row.CorrectCount,
			TotalCount:     row.TotalCount,
			LastAnsweredAt: row.LastAnsweredAt,
		})
	}
	return records, nil
}

type soundChangeProgressRepository struct {
	db *gorm.DB
}

// NewSoundChangeProgressRepository constructs a gorm-backed pronunciation progress store.
func NewSoundChangeProgressRepository(db *gorm.DB) repository.SoundChangeProgressRepository {
	return &soundChangeProgressRepository{db: db}
}

func (r *soundChangeProgressRepository) RecordAttempt(ctx context.Context, rec *entity.SoundChangeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := soundChangeRecordRow{
		UserID:          rec.UserID,
		CategoryID:      rec.CategoryID,
		ItemID:          rec.ItemID,
		CorrectCount:    rec.CorrectCount,
		TotalCount:      rec.TotalCount,
		LastPracticedAt: rec.LastPracticedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"correct_count":     gorm.Expr("sound_change_records.correct_count + excluded.correct_count"),
				"total_count":       gorm.Expr("sound_change_records.total_count + excluded.total_count"),
				"last_practiced_at": gorm.Expr("excluded.last_practiced_at"),
			}),
		}).
		Create(&row).Error
	return translateError(err, "record sound change attempt", nil, nil)
}

func (r *soundChangeProgressRepository) ListByUser(ctx context.Context, userID int64) ([]entity.SoundChangeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []soundChangeRecordRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category_id, item_id").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list sound change records", nil, nil)
	}
	records := make([]entity.SoundChangeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.SoundChangeRecord{
			ID:              row.ID,
			UserID:          row.UserID,
			CategoryID:      row.CategoryID,
			ItemID:          row.ItemID,
			CorrectCount:    row.CorrectCount,
			TotalCount:      row.TotalCount,
			LastPracticedAt: row.LastPracticedAt,
		})
	}
	return records, nil
}
