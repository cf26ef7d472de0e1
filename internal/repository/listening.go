package repository

import (
	"context"

	"github.com/eslkits/drillbox/internal/entity"
)

// ListPassageQuery holds parameters for listing listening passages.
type ListPassageQuery struct {
	Pagination
	FilterOrder
}

// PassageRepository abstracts persistence for listening passages and questions.
type PassageRepository interface {
	Create(ctx context.Context, passage *entity.Passage) (*entity.Passage, error)
	GetByID(ctx context.Context, id int64) (*entity.Passage, error)
	List(ctx context.Context, query *ListPassageQuery) ([]entity.Passage, int64, error)
	ListAll(ctx context.Context) ([]entity.Passage, error)
	Delete(ctx context.Context, id int64) error
	GetQuestion(ctx context.Context, questionID int64) (*entity.ListeningQuestion, error)
}
