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

type fakePassageRepo struct {
	mu       sync.RWMutex
	seq      int64
	passages map[int64]*entity.Passage
}

func newFakePassageRepo() *fakePassageRepo {
	return &fakePassageRepo{passages: make(map[int64]*entity.Passage)}
}

func (r *fakePassageRepo) Create(ctx context.Context, passage *entity.Passage) (*entity.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := clonePassage(passage)
	copy.ID = r.seq
	for i := range copy.Questions {
		r.seq++
		copy.Questions[i].ID = r.seq
		copy.Questions[i].PassageID = copy.ID
	}
	r.passages[copy.ID] = copy
	return clonePassage(copy), nil
}

func (r *fakePassageRepo) GetByID(ctx context.Context, id int64) (*entity.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	passage, ok := r.passages[id]
	if !ok {
		return nil, entity.ErrPassageNotFound
	}
	return clonePassage(passage), nil
}

func (r *fakePassageRepo) List(ctx context.Context, query *repository.ListPassageQuery) ([]entity.Passage, int64, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return all, int64(len(all)), nil
}

func (r *fakePassageRepo) ListAll(ctx context.Context) ([]entity.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]entity.Passage, 0, len(r.passages))
	for _, passage := range r.passages {
		result = append(result, *clonePassage(passage))
	}
	return result, nil
}

func (r *fakePassageRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.passages[id]; !ok {
		return entity.ErrPassageNotFound
	}
	delete(r.passages, id)
	return nil
}

func (r *fakePassageRepo) GetQuestion(ctx context.Context, questionID int64) (*entity.ListeningQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, passage := range r.passages {
		for _, q := range passage.Questions {
			if q.ID == questionID {
				found := q
				return &found, nil
			}
		}
	}
	return nil, entity.ErrQuestionNotFound
}

func clonePassage(src *entity.Passage) *entity.Passage {
	if src == nil {
		return nil
	}
	copy := *src
	copy.Questions = append([]entity.ListeningQuestion(nil), src.Questions...)
	return &copy
}

type fakeListeningRepo struct {
	mu      sync.RWMutex
	seq     int64
	records map[string]*entity.ListeningRecord
}

func newFakeListeningRepo() *fakeListeningRepo {
	return &fakeListeningRepo{records: make(map[string]*entity.ListeningRecord)}
}

func (r *fakeListeningRepo) RecordAnswer(ctx context.Context, rec *entity.ListeningRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%d/%d", rec.UserID, rec.QuestionID)
	if existing, ok := r.records[key]; ok {
		existing.CorrectCount += rec.CorrectCount
		existing.TotalCount += rec.TotalCount
		existing.LastAnsweredAt = rec.LastAnsweredAt
		return nil
	}
	r.seq++
	copy := *rec
	copy.ID = r.seq
	r.records[key] = &copy
	return nil
}

func (r *fakeListeningRepo) ListByUser(ctx context.Context, userID int64) ([]entity.ListeningRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.ListeningRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func seedPassage(t *testing.T, repo *fakePassageRepo, title string, questionCount int) *entity.Passage {
	t.Helper()
	passage := &entity.Passage{Title: title, Level: 1}
	for i := 0; i < questionCount; i++ {
		passage.Questions = append(passage.Questions, entity.ListeningQuestion{
			Prompt:      fmt.Sprintf("%s question %d", title, i+1),
			Options:     []string{"a", "b", "c"},
			AnswerIndex: 0,
		})
	}
	created, err := repo.Create(context.Background(), passage)
	if err != nil {
		t.Fatalf("seed passage %q: %v", title, err)
	}
	return created
}

func TestCreatePassageValidatesTitle(t *testing.T) {
	uc := NewListeningUsecase(newFakePassageRepo(), newFakeListeningRepo())
	if _, err := uc.CreatePassage(context.Background(), &entity.Passage{Title: "   "}); err != entity.ErrInvalidPassageTitle {
		t.Errorf("expected ErrInvalidPassageTitle, got %v", err)
	}
}

func TestRecordAnswerMergesAttempts(t *testing.T) {
	passages := newFakePassageRepo()
	progress := newFakeListeningRepo()
	uc := NewListeningUsecase(passages, progress)
	impl := uc.(*listeningUsecase)
	impl.clock = func() time.Time { return time.Date(2025, 4, 1, 15, 0, 0, 0, time.UTC) }

	passage := seedPassage(t, passages, "At the market", 2)
	questionID := passage.Questions[0].ID

	if err := uc.RecordAnswer(context.Background(), 6, questionID, false); err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}
	if err := uc.RecordAnswer(context.Background(), 6, questionID, true); err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}
	if err := uc.RecordAnswer(context.Background(), 6, 9999, true); err != entity.ErrQuestionNotFound {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}

	records, err := progress.ListByUser(context.Background(), 6)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one merged record, got %d", len(records))
	}
	if records[0].CorrectCount != 1 || records[0].TotalCount != 2 {
		t.Errorf("expected counts 1/2, got %d/%d", records[0].CorrectCount, records[0].TotalCount)
	}
	if records[0].PassageID != passage.ID {
		t.Errorf("expected record bound to passage %d, got %d", passage.ID, records[0].PassageID)
	}
}

func TestListeningSummary(t *testing.T) {
	passages := newFakePassageRepo()
	progress := newFakeListeningRepo()
	uc := NewListeningUsecase(passages, progress)

	done := seedPassage(t, passages, "Breakfast", 2)
	seedPassage(t, passages, "Directions", 3)

	// Answering every question of a passage completes it even when some
	// answers were wrong.
	if err := uc.RecordAnswer(context.Background(), 2, done.Questions[0].ID, true); err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}
	if err := uc.RecordAnswer(context.Background(), 2, done.Questions[1].ID, false); err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}

	summary, err := uc.Summary(context.Background(), 2)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalPassages != 2 || summary.CompletedPassages != 1 {
		t.Errorf("expected 1 of 2 passages completed, got %d/%d", summary.CompletedPassages, summary.TotalPassages)
	}
	if summary.TotalQuestions != 5 || summary.AnsweredQuestions != 2 {
		t.Errorf("expected 2 of 5 questions answered, got %d/%d", summary.AnsweredQuestions, summary.TotalQuestions)
	}
	if summary.CorrectAnswers != 1 || summary.Accuracy != 50 {
		t.Errorf("expected 1 correct at 50%%, got %d at %d%%", summary.CorrectAnswers, summary.Accuracy)
	}
}
