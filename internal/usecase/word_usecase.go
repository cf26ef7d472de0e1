package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/srs"
)

// ReviewOutcome carries one review result. Exactly one of Correct or
// Quality should be set; Quality enables the graded 0-5 transition.
type ReviewOutcome struct {
	Correct *bool
	Quality *int32
}

// WordUsecase encapsulates business logic for the personal vocabulary
// and its spaced repetition schedule.
type WordUsecase interface {
	CollectWord(ctx context.Context, userID int64, word *entity.Word) (*entity.Word, error)
	ReviewWord(ctx context.Context, userID, id int64, outcome ReviewOutcome) (*entity.Word, error)
	ListWords(ctx context.Context, query *repository.ListWordQuery) ([]entity.Word, int64, error)
	ListDueWords(ctx context.Context, userID int64, limit int32) ([]entity.Word, error)
	DeleteWord(ctx context.Context, userID, id int64) error
}

// NewWordUsecase wires the repository with default behaviour.
func NewWordUsecase(repo repository.WordRepository) WordUsecase {
	return &wordUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type wordUsecase struct {
	repo  repository.WordRepository
	clock func() time.Time
}

func (u *wordUsecase) CollectWord(ctx context.Context, userID int64, word *entity.Word) (*entity.Word, error) {
	if word == nil {
		return nil, entity.ErrInvalidWordTerm
	}
	term := strings.TrimSpace(word.Term)
	if term == "" {
		return nil, entity.ErrInvalidWordTerm
	}

	existing, err := u.repo.FindByTerm(ctx, userID, term)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	if existing != nil {
		// Re-collecting an existing word refreshes the lightweight
		// fields but never resets the review state.
		if word.Translation != "" {
			existing.Translation = word.Translation
		}
		if word.Notes != "" {
			existing.Notes = word.Notes
		}
		if word.Language.Code() != "" {
			existing.Language = entity.NormalizeLanguage(word.Language)
		}
		existing.Normalize(now)
		return u.repo.Update(ctx, existing)
	}

	copy := *word
	copy.Term = term
	copy.UserID = userID
	copy.Level = srs.MinLevel
	copy.Normalize(now)

	return u.repo.Create(ctx, &copy)
}

func (u *wordUsecase) ReviewWord(ctx context.Context, userID, id int64, outcome ReviewOutcome) (*entity.Word, error) {
	if id <= 0 {
		return nil, entity.ErrWordNotFound
	}

	word, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var correct bool
	switch {
	case outcome.Quality != nil:
		word.Level = srs.NextLevelGraded(word.Level, *outcome.Quality)
		correct = *outcome.Quality >= 3
	case outcome.Correct != nil:
		word.Level = srs.NextLevel(word.Level, *outcome.Correct)
		correct = *outcome.Correct
	default:
		return nil, entity.ErrInvalidReviewOutcome
	}

	now := u.clock()
	word.TotalCount++
	if correct {
		word.CorrectCount++
	}
	word.LastReviewAt = &now
	next := srs.NextReviewAt(word.Level, now)
	word.NextReviewAt = &next
	word.Normalize(now)

	return u.repo.Update(ctx, word)
}

func (u *wordUsecase) ListWords(ctx context.Context, query *repository.ListWordQuery) ([]entity.Word, int64, error) {
	return u.repo.List(ctx, query)
}

func (u *wordUsecase) ListDueWords(ctx context.Context, userID int64, limit int32) ([]entity.Word, error) {
	if limit <= 0 {
		limit = 20
	}
	return u.repo.ListDue(ctx, userID, u.clock(), limit)
}

func (u *wordUsecase) DeleteWord(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return entity.ErrWordNotFound
	}
	return u.repo.Delete(ctx, userID, id)
}
