package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/pkg/filterexpr"
)

type soundChangeRepository struct {
	db *gorm.DB
}

// NewSoundChangeRepository constructs a gorm-backed pronunciation catalog repository.
func NewSoundChangeRepository(db *gorm.DB) repository.SoundChangeRepository {
	return &soundChangeRepository{db: db}
}

func (r *soundChangeRepository) Create(ctx context.Context, category *entity.SoundChangeCategory) (*entity.SoundChangeCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := toCategoryRow(category)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translateError(err, "create sound change category", nil, nil)
	}
	return r.GetByID(ctx, row.ID)
}

func (r *soundChangeRepository) GetByID(ctx context.Context, id int64) (*entity.SoundChangeCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row soundChangeCategoryRow
	err := r.db.WithContext(ctx).
		Preload("Items", soundItemOrder).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "get sound change category", entity.ErrCategoryNotFound, nil)
	}
	return categoryToEntity(&row), nil
}

func (r *soundChangeRepository) List(ctx context.Context, query *repository.ListCategoryQuery) ([]entity.SoundChangeCategory, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var b listCategoryBindings
	if err := filterexpr.BindCELTo(query.GetFilter(), &b, listCategoriesSchema); err != nil {
		return nil, 0, err
	}
	orderBy, err := filterexpr.ParseOrderBy(query.GetOrderBy(), categoryOrderSchema)
	if err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Model(&soundChangeCategoryRow{})
	if b.NamePrefix != nil {
		tx = tx.Where("name LIKE ?", *b.NamePrefix+"%")
	}
	if b.Kind != nil {
		tx = tx.Where("kind = ?", *b.Kind)
	}
	if len(b.Kinds) > 0 {
		tx = tx.Where("kind IN ?", b.Kinds)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count sound change categories", nil, nil)
	}

	var rows []soundChangeCategoryRow
	err = tx.Order(orderBy).
		Scopes(paginate(query.Pagination)).
		Preload("Items", soundItemOrder).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, "list sound change categories", nil, nil)
	}

	categories := make([]entity.SoundChangeCategory, 0, len(rows))
	for i := range rows {
		categories = append(categories, *categoryToEntity(&rows[i]))
	}
	return categories, total, nil
}

func (r *soundChangeRepository) ListAll(ctx context.Context) ([]entity.SoundChangeCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []soundChangeCategoryRow
	err := r.db.WithContext(ctx).
		Order("id").
		Preload("Items", soundItemOrder).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list all sound change categories", nil, nil)
	}
	categories := make([]entity.SoundChangeCategory, 0, len(rows))
	for i := range rows {
		categories = append(categories, *categoryToEntity(&rows[i]))
	}
	return categories, nil
}

func (r *soundChangeRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&soundChangeItemRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&soundChangeCategoryRow{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err, "delete sound change category", entity.ErrCategoryNotFound, nil)
}

func (r *soundChangeRepository) GetItem(ctx context.Context, itemID int64) (*entity.SoundChangeItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row soundChangeItemRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", itemID).Error; err != nil {
		return nil, translateError(err, "get sound change item", entity.ErrSoundChangeItemNotFound, nil)
	}
	item := soundItemToEntity(&row)
	return &item, nil
}

func soundItemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

func toCategoryRow(category *entity.SoundChangeCategory) *soundChangeCategoryRow {
	row := &soundChangeCategoryRow{
		ID:          category.ID,
		Name:        category.Name,
		Kind:        string(category.Kind),
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	for _, item := range category.Items {
		row.Items = append(row.Items, soundChangeItemRow{
			ID:         item.ID,
			CategoryID: category.ID,
			Written:    item.Written,
			Spoken:     item.Spoken,
			AudioURL:   item.AudioURL,
			Position:   item.Position,
		})
	}
	return row
}

func categoryToEntity(row *soundChangeCategoryRow) *entity.SoundChangeCategory {
	category := &entity.SoundChangeCategory{
		ID:          row.ID,
		Name:        row.Name,
		Kind:        entity.SoundChangeKind(row.Kind),
		Description: row.Description,
		Items:       make([]entity.SoundChangeItem, 0, len(row.Items)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for i := range row.Items {
		category.Items = append(category.Items, soundItemToEntity(&row.Items[i]))
	}
	return category
}

func soundItemToEntity(row *soundChangeItemRow) entity.SoundChangeItem {
	return entity.SoundChangeItem{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Written:    row.Written,
		Spoken:     row.Spoken,
		AudioURL:   row.AudioURL,
		Position:   row.Position,
	}
}
