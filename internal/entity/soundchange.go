package entity

import (
	"strings"
	"time"
)

// SoundChangeKind classifies a pronunciation phenomenon.
type SoundChangeKind string

const (
	KindLinking   SoundChangeKind = "linking"
	KindReduction SoundChangeKind = "reduction"
	KindFlapping  SoundChangeKind = "flapping"
	KindElision   SoundChangeKind = "elision"
)

// ParseSoundChangeKind converts an arbitrary string into a supported kind.
func ParseSoundChangeKind(raw string) SoundChangeKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "linking":
		return KindLinking
	case "reduction":
		return KindReduction
	case "flapping":
		return KindFlapping
	case "elision":
		return KindElision
	default:
		return ""
	}
}

// SoundChangeCategory groups pronunciation exercises of one phenomenon.
type SoundChangeCategory struct {
	ID          int64
	Name        string
	Kind        SoundChangeKind
	Description string
	Items       []SoundChangeItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SoundChangeItem is one written/spoken pair the learner drills.
type SoundChangeItem struct {
	ID         int64
	CategoryID int64
	Written    string
	Spoken     string
	AudioURL   string
	Position   int32
}

// SoundChangeRecord accumulates one user's attempts on one item.
// Unique per (user, item); incremented atomically at the store.
type SoundChangeRecord struct {
	ID              int64
	UserID          int64
	CategoryID      int64
	ItemID          int64
	CorrectCount    int32
	TotalCount      int32
	LastPracticedAt time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (c *SoundChangeCategory) Normalize(now time.Time) {
	c.Name = strings.TrimSpace(c.Name)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Items == nil {
		c.Items = []SoundChangeItem{}
	}
	for i := range c.Items {
		c.Items[i].Written = strings.TrimSpace(c.Items[i].Written)
		c.Items[i].Spoken = strings.TrimSpace(c.Items[i].Spoken)
		if c.Items[i].Position == 0 {
			c.Items[i].Position = int32(i + 1)
		}
	}
}

// ItemIDs returns the identifiers of the category's items in order.
func (c *SoundChangeCategory) ItemIDs() []int64 {
	ids := make([]int64, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
