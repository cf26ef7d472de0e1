package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
)

type fakeWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.Word
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{items: make(map[int64]*entity.Word)}
}

func (r *fakeWordRepo) Create(ctx context.Context, w *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookupLocked(w.UserID, w.Term); ok {
		return nil, entity.ErrDuplicateWord
	}
	r.seq++
	copy := cloneWord(w)
	copy.ID = r.seq
	r.items[copy.ID] = copy
	return cloneWord(copy), nil
}

func (r *fakeWordRepo) Update(ctx context.Context, w *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[w.ID]
	if !ok || existing.UserID != w.UserID {
		return nil, entity.ErrWordNotFound
	}
	copy := cloneWord(w)
	r.items[copy.ID] = copy
	return cloneWord(copy), nil
}

func (r *fakeWordRepo) GetByID(ctx context.Context, userID, id int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrWordNotFound
	}
	return cloneWord(item), nil
}

func (r *fakeWordRepo) FindByTerm(ctx context.Context, userID int64, term string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.lookupLocked(userID, term); ok {
		return cloneWord(item), nil
	}
	return nil, nil
}

func (r *fakeWordRepo) List(ctx context.Context, query *repository.ListWordQuery) ([]entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entity.Word
	for _, item := range r.items {
		if item.UserID == query.UserID {
			result = append(result, *cloneWord(item))
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeWordRepo) ListDue(ctx context.Context, userID int64, now time.Time, limit int32) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []entity.Word
	for _, item := range r.items {
		if item.UserID == userID && item.Due(now) && int32(len(due)) < limit {
			due = append(due, *cloneWord(item))
		}
	}
	return due, nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrWordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeWordRepo) lookupLocked(userID int64, term string) (*entity.Word, bool) {
	needle := entity.NormalizeTerm(term)
	if needle == "" {
		return nil, false
	}
	for _, item := range r.items {
		if item.UserID == userID && strings.ToLower(item.Term) == needle {
			return item, true
		}
	}
	return nil, false
}

func cloneWord(src *entity.Word) *entity.Word {
	if src == nil {
		return nil
	}
	copy := *src
	if src.LastReviewAt != nil {
		last := *src.LastReviewAt
		copy.LastReviewAt = &last
	}
	if src.NextReviewAt != nil {
		next := *src.NextReviewAt
		copy.NextReviewAt = &next
	}
	return &copy
}

func boolPtr(b bool) *bool    { return &b }
func int32Ptr(v int32) *int32 { return &v }

func TestCollectWordCreatesNewEntry(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	fixed := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return fixed }

	got, err := uc.CollectWord(context.Background(), 42, &entity.Word{Term: "  Bridge ", Translation: "ponte"})
	if err != nil {
		t.Fatalf("CollectWord returned error: %v", err)
	}
	if got.ID == 0 {
		t.Errorf("expected ID to be set, got %d", got.ID)
	}
	if got.Term != "Bridge" {
		t.Errorf("expected trimmed term 'Bridge', got %q", got.Term)
	}
	if got.Level != 0 {
		t.Errorf("expected new word at level 0, got %d", got.Level)
	}
	if got.Language != entity.LanguageEnglish {
		t.Errorf("expected language to default to 'en', got %q", got.Language)
	}
	if got.NextReviewAt != nil {
		t.Errorf("expected no review scheduled before first attempt, got %v", got.NextReviewAt)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("expected created_at %v, got %v", fixed, got.CreatedAt)
	}
}

func TestCollectWordDuplicateKeepsReviewState(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	impl.clock = func() time.Time { return time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC) }

	created, err := uc.CollectWord(context.Background(), 1, &entity.Word{Term: "apple"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	if _, err := uc.ReviewWord(context.Background(), 1, created.ID, ReviewOutcome{Correct: boolPtr(true)}); err != nil {
		t.Fatalf("ReviewWord failed: %v", err)
	}

	res, err := uc.CollectWord(context.Background(), 1, &entity.Word{Term: "Apple", Notes: "fruit"})
	if err != nil {
		t.Fatalf("CollectWord duplicate failed: %v", err)
	}
	if res.ID != created.ID {
		t.Errorf("expected existing entry %d, got %d", created.ID, res.ID)
	}
	if res.Notes != "fruit" {
		t.Errorf("expected notes to refresh, got %q", res.Notes)
	}
	if res.Level != 1 || res.TotalCount != 1 {
		t.Errorf("expected review state to survive re-collect, got level=%d total=%d", res.Level, res.TotalCount)
	}
}

func TestReviewWordCorrectPromotesAndSchedules(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	fixed := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return fixed }

	created, err := uc.CollectWord(context.Background(), 7, &entity.Word{Term: "weather"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}

	got, err := uc.ReviewWord(context.Background(), 7, created.ID, ReviewOutcome{Correct: boolPtr(true)})
	if err != nil {
		t.Fatalf("ReviewWord failed: %v", err)
	}
	if got.Level != 1 {
		t.Errorf("expected level 1 after first correct answer, got %d", got.Level)
	}
	if got.CorrectCount != 1 || got.TotalCount != 1 {
		t.Errorf("expected counts 1/1, got %d/%d", got.CorrectCount, got.TotalCount)
	}
	// Level 1 reviews come back after ten minutes.
	wantNext := fixed.Add(10 * time.Minute)
	if got.NextReviewAt == nil || !got.NextReviewAt.Equal(wantNext) {
		t.Errorf("expected next review at %v, got %v", wantNext, got.NextReviewAt)
	}
	if got.LastReviewAt == nil || !got.LastReviewAt.Equal(fixed) {
		t.Errorf("expected last review at %v, got %v", fixed, got.LastReviewAt)
	}
}

func TestReviewWordIncorrectSaturatesAtZero(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	impl.clock = func() time.Time { return time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC) }

	created, err := uc.CollectWord(context.Background(), 7, &entity.Word{Term: "though"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}

	got, err := uc.ReviewWord(context.Background(), 7, created.ID, ReviewOutcome{Correct: boolPtr(false)})
	if err != nil {
		t.Fatalf("ReviewWord failed: %v", err)
	}
	if got.Level != 0 {
		t.Errorf("expected level to stay at 0, got %d", got.Level)
	}
	if got.CorrectCount != 0 || got.TotalCount != 1 {
		t.Errorf("expected counts 0/1, got %d/%d", got.CorrectCount, got.TotalCount)
	}
}

func TestReviewWordGradedOutcome(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	impl.clock = func() time.Time { return time.Date(2025, 2, 4, 9, 0, 0, 0, time.UTC) }

	created, err := uc.CollectWord(context.Background(), 3, &entity.Word{Term: "thorough"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}

	// Hesitant recall holds the level but still counts the attempt.
	got, err := uc.ReviewWord(context.Background(), 3, created.ID, ReviewOutcome{Quality: int32Ptr(2)})
	if err != nil {
		t.Fatalf("ReviewWord failed: %v", err)
	}
	if got.Level != 0 {
		t.Errorf("expected level to hold at 0, got %d", got.Level)
	}
	if got.CorrectCount != 0 || got.TotalCount != 1 {
		t.Errorf("expected counts 0/1, got %d/%d", got.CorrectCount, got.TotalCount)
	}

	got, err = uc.ReviewWord(context.Background(), 3, created.ID, ReviewOutcome{Quality: int32Ptr(5)})
	if err != nil {
		t.Fatalf("ReviewWord failed: %v", err)
	}
	if got.Level != 1 || got.CorrectCount != 1 {
		t.Errorf("expected promotion with correct count, got level=%d correct=%d", got.Level, got.CorrectCount)
	}
}

func TestReviewWordRequiresOutcome(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)

	created, err := uc.CollectWord(context.Background(), 3, &entity.Word{Term: "gauge"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	if _, err := uc.ReviewWord(context.Background(), 3, created.ID, ReviewOutcome{}); err == nil {
		t.Fatal("expected error for empty outcome")
	}
}

func TestListDueWords(t *testing.T) {
	repo := newFakeWordRepo()
	uc := NewWordUsecase(repo)
	impl := uc.(*wordUsecase)
	base := time.Date(2025, 2, 5, 9, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return base }

	fresh, err := uc.CollectWord(context.Background(), 5, &entity.Word{Term: "due"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	reviewed, err := uc.CollectWord(context.Background(), 5, &entity.Word{Term: "later"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	// A correct answer at level 0 schedules the next review ten minutes out.
	if _, err := uc.ReviewWord(context.Background(), 5, reviewed.ID, ReviewOutcome{Correct: boolPtr(true)}); err != nil {
		t.Fatalf("ReviewWord failed: %v", err)
	}

	due, err := uc.ListDueWords(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("ListDueWords failed: %v", err)
	}
	if len(due) != 1 || due[0].ID != fresh.ID {
		t.Fatalf("expected only the never-reviewed word to be due, got %+v", due)
	}
}
