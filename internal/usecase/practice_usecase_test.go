package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
)

type fakeLessonRepo struct {
	mu      sync.RWMutex
	seq     int64
	lessons map[int64]*entity.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: make(map[int64]*entity.Lesson)}
}

func (r *fakeLessonRepo) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneLesson(lesson)
	copy.ID = r.seq
	for i := range copy.Items {
		r.seq++
		copy.Items[i].ID = r.seq
		copy.Items[i].LessonID = copy.ID
	}
	r.lessons[copy.ID] = copy
	return cloneLesson(copy), nil
}

func (r *fakeLessonRepo) Update(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[lesson.ID]; !ok {
		return nil, entity.ErrLessonNotFound
	}
	copy := cloneLesson(lesson)
	r.lessons[copy.ID] = copy
	return cloneLesson(copy), nil
}

func (r *fakeLessonRepo) GetByID(ctx context.Context, id int64) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lesson, ok := r.lessons[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	return cloneLesson(lesson), nil
}

func (r *fakeLessonRepo) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return all, int64(len(all)), nil
}

func (r *fakeLessonRepo) ListAll(ctx context.Context) ([]entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]entity.Lesson, 0, len(r.lessons))
	for _, lesson := range r.lessons {
		result = append(result, *cloneLesson(lesson))
	}
	return result, nil
}

func (r *fakeLessonRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[id]; !ok {
		return entity.ErrLessonNotFound
	}
	delete(r.lessons, id)
	return nil
}

func (r *fakeLessonRepo) GetItem(ctx context.Context, itemID int64) (*entity.QAItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, lesson := range r.lessons {
		for _, item := range lesson.Items {
			if item.ID == itemID {
				found := item
				return &found, nil
			}
		}
	}
	return nil, entity.ErrItemNotFound
}

func cloneLesson(src *entity.Lesson) *entity.Lesson {
	if src == nil {
		return nil
	}
	copy := *src
	copy.Items = append([]entity.QAItem(nil), src.Items...)
	return &copy
}

type fakePracticeRepo struct {
	mu      sync.RWMutex
	seq     int64
	records map[string]*entity.PracticeRecord
}

func newFakePracticeRepo() *fakePracticeRepo {
	return &fakePracticeRepo{records: make(map[string]*entity.PracticeRecord)}
}

func (r *fakePracticeRepo) RecordAttempt(ctx context.Context, rec *entity.PracticeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%d/%d/%s", rec.UserID, rec.ItemID, rec.Mode)
	if existing, ok := r.records[key]; ok {
		existing.CorrectCount += rec.CorrectCount
		existing.TotalCount += rec.TotalCount
		existing.LastPracticedAt = rec.LastPracticedAt
		return nil
	}
	r.seq++
	copy := *rec
	copy.ID = r.seq
	r.records[key] = &copy
	return nil
}

func (r *fakePracticeRepo) ListByUser(ctx context.Context, userID int64) ([]entity.PracticeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.PracticeRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func seedLesson(t *testing.T, repo *fakeLessonRepo, title string, itemCount int) *entity.Lesson {
	t.Helper()
	lesson := &entity.Lesson{Title: title}
	for i := 0; i < itemCount; i++ {
		lesson.Items = append(lesson.Items, entity.QAItem{
			Question: fmt.Sprintf("%s question %d", title, i+1),
			Answer:   fmt.Sprintf("%s answer %d", title, i+1),
		})
	}
	created, err := repo.Create(context.Background(), lesson)
	if err != nil {
		t.Fatalf("seed lesson %q: %v", title, err)
	}
	return created
}

func TestRecordAttemptAccumulates(t *testing.T) {
	lessons := newFakeLessonRepo()
	practice := newFakePracticeRepo()
	uc := NewPracticeUsecase(lessons, practice)
	impl := uc.(*practiceUsecase)
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return fixed }

	lesson := seedLesson(t, lessons, "Stage 1", 2)
	itemID := lesson.Items[0].ID

	for _, correct := range []bool{true, true, false} {
		if err := uc.RecordAttempt(context.Background(), 9, itemID, entity.ModeQA, correct); err != nil {
			t.Fatalf("RecordAttempt failed: %v", err)
		}
	}

	records, err := practice.ListByUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected attempts to merge into one record, got %d", len(records))
	}
	rec := records[0]
	if rec.TotalCount != 3 || rec.CorrectCount != 2 {
		t.Errorf("expected counts 2/3, got %d/%d", rec.CorrectCount, rec.TotalCount)
	}
	if rec.LessonID != lesson.ID {
		t.Errorf("expected record bound to lesson %d, got %d", lesson.ID, rec.LessonID)
	}
}

func TestRecordAttemptRejectsBadInput(t *testing.T) {
	lessons := newFakeLessonRepo()
	practice := newFakePracticeRepo()
	uc := NewPracticeUsecase(lessons, practice)

	lesson := seedLesson(t, lessons, "Stage 1", 1)
	itemID := lesson.Items[0].ID

	if err := uc.RecordAttempt(context.Background(), 9, itemID, entity.PracticeMode("listening"), true); err != entity.ErrInvalidPracticeMode {
		t.Errorf("expected ErrInvalidPracticeMode, got %v", err)
	}
	if err := uc.RecordAttempt(context.Background(), 9, 9999, entity.ModeQA, true); err != entity.ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if err := uc.RecordAttempt(context.Background(), 0, itemID, entity.ModeQA, true); err != entity.ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestLessonProgressCompletion(t *testing.T) {
	lessons := newFakeLessonRepo()
	practice := newFakePracticeRepo()
	uc := NewPracticeUsecase(lessons, practice)

	done := seedLesson(t, lessons, "Greetings", 2)
	partial := seedLesson(t, lessons, "Numbers", 3)
	seedLesson(t, lessons, "Colours", 2)

	// Completion means every item touched, in any mode.
	for _, item := range done.Items {
		if err := uc.RecordAttempt(context.Background(), 4, item.ID, entity.ModeShadowing, false); err != nil {
			t.Fatalf("RecordAttempt failed: %v", err)
		}
	}
	if err := uc.RecordAttempt(context.Background(), 4, partial.Items[0].ID, entity.ModeQA, true); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}

	progress, err := uc.LessonProgress(context.Background(), 4)
	if err != nil {
		t.Fatalf("LessonProgress failed: %v", err)
	}
	if len(progress) != 3 {
		t.Fatalf("expected 3 lessons in view, got %d", len(progress))
	}

	byID := make(map[int64]entity.LessonProgress, len(progress))
	for _, p := range progress {
		byID[p.LessonID] = p
	}
	if got := byID[done.ID]; !got.Completed || got.PracticedItems != 2 {
		t.Errorf("expected %q completed with 2 practiced, got %+v", done.Title, got)
	}
	if got := byID[partial.ID]; got.Completed || got.PracticedItems != 1 {
		t.Errorf("expected %q incomplete with 1 practiced, got %+v", partial.Title, got)
	}
	if got := byID[partial.ID].Modes[entity.ModeQA]; got.Total != 1 || got.Accuracy != 100 {
		t.Errorf("expected qa stats 1 attempt at 100%%, got %+v", got)
	}
}

func TestSummaryAggregatesModesAndStreak(t *testing.T) {
	lessons := newFakeLessonRepo()
	practice := newFakePracticeRepo()
	uc := NewPracticeUsecase(lessons, practice)
	impl := uc.(*practiceUsecase)

	lesson := seedLesson(t, lessons, "Stage 2", 2)
	seedLesson(t, lessons, "Stage 3", 2)

	now := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)
	days := []time.Time{
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -1),
		now,
	}

	// Three sessions on consecutive days; the last one finishes the lesson.
	impl.clock = func() time.Time { return days[0] }
	if err := uc.RecordAttempt(context.Background(), 8, lesson.Items[0].ID, entity.ModeQA, true); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	impl.clock = func() time.Time { return days[1] }
	if err := uc.RecordAttempt(context.Background(), 8, lesson.Items[0].ID, entity.ModeQA, false); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	impl.clock = func() time.Time { return days[2] }
	if err := uc.RecordAttempt(context.Background(), 8, lesson.Items[1].ID, entity.ModeShadowing, false); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}

	impl.clock = func() time.Time { return now }
	summary, err := uc.Summary(context.Background(), 8)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalLessons != 2 || summary.CompletedLessons != 1 {
		t.Errorf("expected 1 of 2 lessons completed, got %d/%d", summary.CompletedLessons, summary.TotalLessons)
	}
	if summary.TotalQAItems != 4 || summary.PracticedQAItems != 2 {
		t.Errorf("expected 2 of 4 items practiced, got %d/%d", summary.PracticedQAItems, summary.TotalQAItems)
	}
	if summary.QA.Total != 2 || summary.QA.Correct != 1 || summary.QA.Accuracy != 50 {
		t.Errorf("unexpected qa summary: %+v", summary.QA)
	}
	if summary.Shadowing.Total != 1 || summary.Shadowing.Practiced != 1 {
		t.Errorf("unexpected shadowing summary: %+v", summary.Shadowing)
	}
	if summary.Dictation.Total != 0 || summary.Dictation.Accuracy != 0 {
		t.Errorf("unexpected dictation summary: %+v", summary.Dictation)
	}
	// Upserts keep only the latest stamp per (item, mode); attempts on
	// the same item across days collapse to the newest day, so the
	// streak counts the two distinct record stamps ending today.
	if summary.StreakDays != 2 {
		t.Errorf("expected streak of 2, got %d", summary.StreakDays)
	}
	if summary.TotalLessons == 0 {
		t.Error("summary should cover the whole catalog")
	}
}

func TestSummaryEmptyHistory(t *testing.T) {
	lessons := newFakeLessonRepo()
	practice := newFakePracticeRepo()
	uc := NewPracticeUsecase(lessons, practice)

	seedLesson(t, lessons, "Stage 1", 2)

	summary, err := uc.Summary(context.Background(), 11)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.CompletedLessons != 0 || summary.PracticedQAItems != 0 || summary.StreakDays != 0 {
		t.Errorf("expected zeroed progress for a fresh user, got %+v", summary)
	}
	if summary.TotalLessons != 1 || summary.TotalQAItems != 2 {
		t.Errorf("catalog totals should still be reported, got %+v", summary)
	}
}
