package repository

import (
	"context"

	"github.com/eslkits/drillbox/internal/entity"
)

// ListLessonQuery holds parameters for listing lessons.
type ListLessonQuery struct {
	Pagination
	FilterOrder
}

// LessonRepository abstracts persistence for lessons and their Q&A items.
type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	Update(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	GetByID(ctx context.Context, id int64) (*entity.Lesson, error)
	List(ctx context.Context, query *ListLessonQuery) ([]entity.Lesson, int64, error)
	// ListAll returns the full catalog with items, for aggregation.
	ListAll(ctx context.Context) ([]entity.Lesson, error)
	Delete(ctx context.Context, id int64) error
	// GetItem resolves a Q&A item regardless of lesson.
	GetItem(ctx context.Context, itemID int64) (*entity.QAItem, error)
}
