package repository

import (
	"context"

	"github.com/eslkits/drillbox/internal/entity"
)

// ListCategoryQuery holds parameters for listing sound change categories.
type ListCategoryQuery struct {
	Pagination
	FilterOrder
}

// SoundChangeRepository abstracts persistence for pronunciation categories and items.
type SoundChangeRepository interface {
	Create(ctx context.Context, category *entity.SoundChangeCategory) (*entity.SoundChangeCategory, error)
	GetByID(ctx context.Context, id int64) (*entity.SoundChangeCategory, error)
	List(ctx context.Context, query *ListCategoryQuery) ([]entity.SoundChangeCategory, int64, error)
	ListAll(ctx context.Context) ([]entity.SoundChangeCategory, error)
	Delete(ctx context.Context, id int64) error
	GetItem(ctx context.Context, itemID int64) (*entity.SoundChangeItem, error)
}
