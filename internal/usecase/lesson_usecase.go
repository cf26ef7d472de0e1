package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
)

// LessonUsecase encapsulates business logic for managing the lesson catalog.
type LessonUsecase interface {
	CreateLesson(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	GetLesson(ctx context.Context, id int64) (*entity.Lesson, error)
	ListLessons(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error)
	DeleteLesson(ctx context.Context, id int64) error
}

// NewLessonUsecase wires the repository with default behaviour.
func NewLessonUsecase(repo repository.LessonRepository) LessonUsecase {
	return &lessonUsecase{
		repo:  repo,
		clock: time.Now,
	}
}

type lessonUsecase struct {
	repo  repository.LessonRepository
	clock func() time.Time
}

func (u *lessonUsecase) CreateLesson(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if lesson == nil || strings.TrimSpace(lesson.Title) == "" {
		return nil, entity.ErrInvalidLessonTitle
	}
	copy := *lesson
	copy.Normalize(u.clock())
	return u.repo.Create(ctx, &copy)
}

func (u *lessonUsecase) UpdateLesson(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if lesson == nil || lesson.ID <= 0 {
		return nil, entity.ErrLessonNotFound
	}
	if strings.TrimSpace(lesson.Title) == "" {
		return nil, entity.ErrInvalidLessonTitle
	}

	existing, err := u.repo.GetByID(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = lesson.Title
	existing.Stage = lesson.Stage
	existing.Description = lesson.Description
	existing.Position = lesson.Position
	if lesson.Items != nil {
		existing.Items = lesson.Items
	}
	existing.Normalize(u.clock())

	return u.repo.Update(ctx, existing)
}

func (u *lessonUsecase) GetLesson(ctx context.Context, id int64) (*entity.Lesson, error) {
	if id <= 0 {
		return nil, entity.ErrLessonNotFound
	}
	return u.repo.GetByID(ctx, id)
}

func (u *lessonUsecase) ListLessons(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error) {
	return u.repo.List(ctx, query)
}

func (u *lessonUsecase) DeleteLesson(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrLessonNotFound
	}
	return u.repo.Delete(ctx, id)
}
