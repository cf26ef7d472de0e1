package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/pkg/filterexpr"
)

type wordRepository struct {
	db *gorm.DB
}

// NewWordRepository constructs a gorm-backed vocabulary repository.
func NewWordRepository(db *gorm.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := toWordRow(word)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translateError(err, "create word", nil, entity.ErrDuplicateWord)
	}
	return wordToEntity(row), nil
}

func (r *wordRepository) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := toWordRow(word)
	res := r.db.WithContext(ctx).
		Model(&wordRow{}).
		Where("id = ? AND user_id = ?", row.ID, row.UserID).
		Updates(map[string]any{
			"term":           row.Term,
			"term_key":       row.TermKey,
			"language":       row.Language,
			"translation":    row.Translation,
			"notes":          row.Notes,
			"level":          row.Level,
			"correct_count":  row.CorrectCount,
			"total_count":    row.TotalCount,
			"last_review_at": row.LastReviewAt,
			"next_review_at": row.NextReviewAt,
			"updated_at":     row.UpdatedAt,
		})
	if res.Error != nil {
		return nil, translateError(res.Error, "update word", nil, entity.ErrDuplicateWord)
	}
	if res.RowsAffected == 0 {
		return nil, entity.ErrWordNotFound
	}
	return r.GetByID(ctx, word.UserID, word.ID)
}

func (r *wordRepository) GetByID(ctx context.Context, userID, id int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row wordRow
	err := r.db.WithContext(ctx).First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateError(err, "get word", entity.ErrWordNotFound, nil)
	}
	return wordToEntity(&row), nil
}

func (r *wordRepository) FindByTerm(ctx context.Context, userID int64, term string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := entity.NormalizeTerm(term)
	if key == "" {
		return nil, nil
	}
	var row wordRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND term_key = ?", userID, key).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, translateError(err, "find word by term", nil, nil)
	}
	if row.ID == 0 {
		return nil, nil
	}
	return wordToEntity(&row), nil
}

func (r *wordRepository) List(ctx context.Context, query *repository.ListWordQuery) ([]entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var b listWordBindings
	if err := filterexpr.BindCELTo(query.GetFilter(), &b, listWordsSchema); err != nil {
		return nil, 0, err
	}
	orderBy, err := filterexpr.ParseOrderBy(query.GetOrderBy(), wordOrderSchema)
	if err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Model(&wordRow{}).Where("user_id = ?", query.UserID)
	if b.TermPrefix != nil {
		tx = tx.Where("term_key LIKE ?", entity.NormalizeTerm(*b.TermPrefix)+"%")
	}
	if b.Language != nil {
		tx = tx.Where("language = ?", *b.Language)
	}
	if b.Level != nil {
		tx = tx.Where("level = ?", *b.Level)
	}
	if b.LevelMin != nil {
		tx = tx.Where("level >= ?", *b.LevelMin)
	}
	if b.LevelMax != nil {
		tx = tx.Where("level <= ?", *b.LevelMax)
	}
	if b.ReviewAfter != nil {
		tx = tx.Where("next_review_at >= ?", *b.ReviewAfter)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count words", nil, nil)
	}

	var rows []wordRow
	if err := tx.Order(orderBy).Scopes(paginate(query.Pagination)).Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "list words", nil, nil)
	}

	words := make([]entity.Word, 0, len(rows))
	for i := range rows {
		words = append(words, *wordToEntity(&rows[i]))
	}
	return words, total, nil
}

func (r *wordRepository) ListDue(ctx context.Context, userID int64, now time.Time, limit int32) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []wordRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (next_review_at IS NULL OR next_review_at <= ?)", userID, now).
		Order("next_review_at, id").
		Limit(int(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list due words", nil, nil)
	}
	words := make([]entity.Word, 0, len(rows))
	for i := range rows {
		words = append(words, *wordToEntity(&rows[i]))
	}
	return words, nil
}

func (r *wordRepository) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&wordRow{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return translateError(res.Error, "delete word", nil, nil)
	}
	if res.RowsAffected == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func toWordRow(word *entity.Word) *wordRow {
	return &wordRow{
		ID:           word.ID,
		UserID:       word.UserID,
		Term:         word.Term,
		TermKey:      entity.NormalizeTerm(word.Term),
		Language:     word.Language.Code(),
		Translation:  word.Translation,
		Notes:        word.Notes,
		Level:        word.Level,
		CorrectCount: word.CorrectCount,
		TotalCount:   word.TotalCount,
		LastReviewAt: word.LastReviewAt,
		NextReviewAt: word.NextReviewAt,
		CreatedAt:    word.CreatedAt,
		UpdatedAt:    word.UpdatedAt,
	}
}

func wordToEntity(row *wordRow) *entity.Word {
	return &entity.Word{
		ID:           row.ID,
		UserID:       row.UserID,
		Term:         row.Term,
		Language:     entity.Language(row.Language),
		Translation:  row.Translation,
		Notes:        row.Notes,
		Level:        row.Level,
		CorrectCount: row.CorrectCount,
		TotalCount:   row.TotalCount,
		LastReviewAt: row.LastReviewAt,
		NextReviewAt: row.NextReviewAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
