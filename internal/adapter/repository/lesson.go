package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/pkg/filterexpr"
)

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository constructs a gorm-backed lesson repository.
func NewLessonRepository(db *gorm.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := toLessonRow(lesson)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translateError(err, "create lesson", nil, nil)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *lessonRepository) Update(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := toLessonRow(lesson)
	items := row.Items
	row.Items = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&lessonRow{}).Where("id = ?", row.ID).Updates(map[string]any{
			"title":       row.Title,
			"stage":       row.Stage,
			"description": row.Description,
			"position":    row.Position,
			"updated_at":  row.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Items are replaced wholesale; the usecase already merged the
		// incoming set with the stored one.
		if err := tx.Where("lesson_id = ?", row.ID).Delete(&qaItemRow{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].LessonID = row.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, translateError(err, "update lesson", entity.ErrLessonNotFound, nil)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *lessonRepository) GetByID(ctx context.Context, id int64) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row lessonRow
	err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "get lesson", entity.ErrLessonNotFound, nil)
	}
	return lessonToEntity(&row), nil
}

func (r *lessonRepository) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var b listLessonBindings
	if err := filterexpr.BindCELTo(query.GetFilter(), &b, listLessonsSchema); err != nil {
		return nil, 0, err
	}
	orderBy, err := filterexpr.ParseOrderBy(query.GetOrderBy(), lessonOrderSchema)
	if err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Model(&lessonRow{})
	if b.TitlePrefix != nil {
		tx = tx.Where("title LIKE ?", *b.TitlePrefix+"%")
	}
	if b.Stage != nil {
		tx = tx.Where("stage = ?", *b.Stage)
	}
	if len(b.Stages) > 0 {
		tx = tx.Where("stage IN ?", b.Stages)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count lessons", nil, nil)
	}

	var rows []lessonRow
	err = tx.Order(orderBy).
		Scopes(paginate(query.Pagination)).
		Preload("Items", itemOrder).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, "list lessons", nil, nil)
	}

	lessons := make([]entity.Lesson, 0, len(rows))
	for i := range rows {
		lessons = append(lessons, *lessonToEntity(&rows[i]))
	}
	return lessons, total, nil
}

func (r *lessonRepository) ListAll(ctx context.Context) ([]entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []lessonRow
	err := r.db.WithContext(ctx).
		Order("position, id").
		Preload("Items", itemOrder).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list all lessons", nil, nil)
	}
	lessons := make([]entity.Lesson, 0, len(rows))
	for i := range rows {
		lessons = append(lessons, *lessonToEntity(&rows[i]))
	}
	return lessons, nil
}

func (r *lessonRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&qaItemRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&lessonRow{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "delete lesson", entity.ErrLessonNotFound, nil)
}

func (r *lessonRepository) GetItem(ctx context.Context, itemID int64) (*entity.QAItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row qaItemRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", itemID).Error; err != nil {
		return nil, translateError(err, "get qa item", entity.ErrItemNotFound, nil)
	}
	item := qaItemToEntity(&row)
	return &item, nil
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

func toLessonRow(lesson *entity.Lesson) *lessonRow {
	row := &lessonRow{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Stage:       lesson.Stage,
		Description: lesson.Description,
		Position:    lesson.Position,
		CreatedAt:   lesson.CreatedAt,
		UpdatedAt:   lesson.UpdatedAt,
	}
	for _, item := range lesson.Items {
		row.Items = append(row.Items, qaItemRow{
			ID:       item.ID,
			LessonID: lesson.ID,
			Question: item.Question,
			Answer:   item.Answer,
			AudioURL: item.AudioURL,
			Position: item.Position,
		})
	}
	return row
}

func lessonToEntity(row *lessonRow) *entity.Lesson {
	lesson := &entity.Lesson{
		ID:          row.ID,
		Title:       row.Title,
		Stage:       row.Stage,
		Description: row.Description,
		Position:    row.Position,
		Items:       make([]entity.QAItem, 0, len(row.Items)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for i := range row.Items {
		lesson.Items = append(lesson.Items, qaItemToEntity(&row.Items[i]))
	}
	return lesson
}

func qaItemToEntity(row *qaItemRow) entity.QAItem {
	return entity.QAItem{
		ID:       row.ID,
		LessonID: row.LessonID,
		Question: row.Question,
		Answer:   row.Answer,
		AudioURL: row.AudioURL,
		Position: row.Position,
	}
}
