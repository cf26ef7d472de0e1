package repository

import (
	"context"

	"github.com/eslkits/drillbox/internal/entity"
)

// PracticeRepository persists cumulative Callan drilling records.
//
// RecordAttempt must be atomic: the counts on the given record are
// deltas, and concurrent attempts for the same (user, item, mode) key
// must both land (single-statement upsert-with-increment, no
// check-then-act).
type PracticeRepository interface {
	RecordAttempt(ctx context.Context, rec *entity.PracticeRecord) error
	ListByUser(ctx context.Context, userID int64) ([]entity.PracticeRecord, error)
}

// ListeningRepository persists cumulative listening answers with the
// same atomic increment contract, keyed by (user, question).
type ListeningRepository interface {
	RecordAnswer(ctx context.Context, rec *entity.ListeningRecord) error
	ListByUser(ctx context.Context, userID int64) ([]entity.ListeningRecord, error)
}

// SoundChangeProgressRepository persists cumulative pronunciation
// attempts with the same atomic increment contract, keyed by (user, item).
type SoundChangeProgressRepository interface {
	RecordAttempt(ctx context.Context, rec *entity.SoundChangeRecord) error
	ListByUser(ctx context.Context, userID int64) ([]entity.SoundChangeRecord, error)
}
