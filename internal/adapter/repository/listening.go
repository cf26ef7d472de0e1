package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/pkg/filterexpr"
)

type passageRepository struct {
	db *gorm.DB
}

// NewPassageRepository constructs a gorm-backed listening passage repository.
func NewPassageRepository(db *gorm.DB) repository.PassageRepository {
	return &passageRepository{db: db}
}

func (r *passageRepository) Create(ctx context.Context, passage *entity.Passage) (*entity.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := toPassageRow(passage)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translateError(err, "create passage", nil, nil)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *passageRepository) GetByID(ctx context.Context, id int64) (*entity.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row passageRow
	err := r.db.WithContext(ctx).
		Preload("Questions", questionOrder).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "get passage", entity.ErrPassageNotFound, nil)
	}
	return passageToEntity(&row)
}

func (r *passageRepository) List(ctx context.Context, query *repository.ListPassageQuery) ([]entity.Passage, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var b listPassageBindings
	if err := filterexpr.BindCELTo(query.GetFilter(), &b, listPassagesSchema); err != nil {
		return nil, 0, err
	}
	orderBy, err := filterexpr.ParseOrderBy(query.GetOrderBy(), passageOrderSchema)
	if err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Model(&passageRow{})
	if b.TitlePrefix != nil {
		tx = tx.Where("title LIKE ?", *b.TitlePrefix+"%")
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

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count passages", nil, nil)
	}

	var rows []passageRow
	err = tx.Order(orderBy).
		Scopes(paginate(query.Pagination)).
		Preload("Questions", questionOrder).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, "list passages", nil, nil)
	}

	passages := make([]entity.Passage, 0, len(rows))
	for i := range rows {
		passage, err := passageToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		passages = append(passages, *passage)
	}
	return passages, total, nil
}

func (r *passageRepository) ListAll(ctx context.Context) ([]entity.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []passageRow
	err := r.db.WithContext(ctx).
		Order("id").
		Preload("Questions", questionOrder).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list all passages", nil, nil)
	}
	passages := make([]entity.Passage, 0, len(rows))
	for i := range rows {
		passage, err := passageToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		passages = append(passages, *passage)
	}
	return passages, nil
}

func (r *passageRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("passage_id = ?", id).Delete(&listeningQuestionRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&passageRow{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "delete passage", entity.ErrPassageNotFound, nil)
}

func (r *passageRepository) GetQuestion(ctx context.Context, questionID int64) (*entity.ListeningQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row listeningQuestionRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", questionID).Error; err != nil {
		return nil, translateError(err, "get listening question", entity.ErrQuestionNotFound, nil)
	}
	question, err := questionToEntity(&row)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func questionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

func toPassageRow(passage *entity.Passage) (*passageRow, error) {
	row := &passageRow{
		ID:         passage.ID,
		Title:      passage.Title,
		Level:      passage.Level,
		AudioURL:   passage.AudioURL,
		Transcript: passage.Transcript,
		CreatedAt:  passage.CreatedAt,
		UpdatedAt:  passage.UpdatedAt,
	}
	for _, q := range passage.Questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return nil, fmt.Errorf("encode question options: %w", err)
		}
		row.Questions = append(row.Questions, listeningQuestionRow{
			ID:          q.ID,
			PassageID:   passage.ID,
			Prompt:      q.Prompt,
			Options:     datatypes.JSON(options),
			AnswerIndex: q.AnswerIndex,
			Position:    q.Position,
		})
	}
	return row, nil
}

func passageToEntity(row *passageRow) (*entity.Passage, error) {
	passage := &entity.Passage{
		ID:         row.ID,
		Title:      row.Title,
		Level:      row.Level,
		AudioURL:   row.AudioURL,
		Transcript: row.Transcript,
		Questions:  make([]entity.ListeningQuestion, 0, len(row.Questions)),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	for i := range row.Questions {
		question, err := questionToEntity(&row.Questions[i])
		if err != nil {
			return nil, err
		}
		passage.Questions = append(passage.Questions, question)
	}
	return passage, nil
}

func questionToEntity(row *listeningQuestionRow) (entity.ListeningQuestion, error) {
	var options []string
	if len(row.Options) > 0 {
		if err := json.Unmarshal(row.Options, &options); err != nil {
			return entity.ListeningQuestion{}, fmt.Errorf("decode question options: %w", err)
		}
	}
	return entity.ListeningQuestion{
		ID:          row.ID,
		PassageID:   row.PassageID,
		Prompt:      row.Prompt,
		Options:     options,
		AnswerIndex: row.AnswerIndex,
		Position:    row.Position,
	}, nil
}
