package repository

import (
	"context"
	"time"

	"github.com/eslkits/drillbox/internal/entity"
)

// ListWordQuery holds parameters for listing a user's vocabulary.
type ListWordQuery struct {
	Pagination
	FilterOrder

	UserID int64
}

// WordRepository abstracts persistence for vocabulary words to keep usecases storage agnostic.
type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Update(ctx context.Context, word *entity.Word) (*entity.Word, error)
	GetByID(ctx context.Context, userID, id int64) (*entity.Word, error)
	FindByTerm(ctx context.Context, userID int64, term string) (*entity.Word, error)
	List(ctx context.Context, query *ListWordQuery) ([]entity.Word, int64, error)
	// ListDue returns words whose next review is at or before now,
	// including words never reviewed. Ordered by next_review_at ascending.
	ListDue(ctx context.Context, userID int64, now time.Time, limit int32) ([]entity.Word, error)
	Delete(ctx context.Context, userID, id int64) error
}
