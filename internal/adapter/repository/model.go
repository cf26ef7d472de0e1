package repository

import (
	"time"

	"gorm.io/datatypes"
)

// Row models owned by the persistence adapter. The entity layer never
// sees gorm tags or storage-only columns such as words.term_key.

type lessonRow struct {
	ID          int64 `gorm:"primaryKey"`
	Title       string
	Stage       int32
	Description string
	Position    int32       `gorm:"index"`
	Items       []qaItemRow `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (lessonRow) TableName() string { return "lessons" }

type qaItemRow struct {
	ID       int64 `gorm:"primaryKey"`
	LessonID int64 `gorm:"index"`
	Question string
	Answer   string
	AudioURL string
	Position int32
}

func (qaItemRow) TableName() string { return "qa_items" }

type wordRow struct {
	ID     int64  `gorm:"primaryKey"`
	UserID int64  `gorm:"uniqueIndex:idx_words_user_term"`
	Term   string
	// TermKey is the lowercased term; it backs the per-user uniqueness
	// guarantee so "Apple" and "apple" are one entry.
	TermKey      string `gorm:"uniqueIndex:idx_words_user_term"`
	Language     string
	Translation  string
	Notes        string
	Level        int32
	CorrectCount int32
	TotalCount   int32
	LastReviewAt *time.Time
	NextReviewAt *time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (wordRow) TableName() string { return "words" }

type practiceRecordRow struct {
	ID              int64  `gorm:"primaryKey"`
	UserID          int64  `gorm:"uniqueIndex:idx_practice_user_item_mode"`
	LessonID        int64  `gorm:"index"`
	ItemID          int64  `gorm:"uniqueIndex:idx_practice_user_item_mode"`
	Mode            string `gorm:"uniqueIndex:idx_practice_user_item_mode"`
	CorrectCount    int32
	TotalCount      int32
	LastPracticedAt time.Time
}

func (practiceRecordRow) TableName() string { return "practice_records" }

type passageRow struct {
	ID         int64 `gorm:"primaryKey"`
	Title      string
	Level      int32
	AudioURL   string
	Transcript string
	Questions  []listeningQuestionRow `gorm:"foreignKey:PassageID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (passageRow) TableName() string { return "passages" }

type listeningQuestionRow struct {
	ID          int64 `gorm:"primaryKey"`
	PassageID   int64 `gorm:"index"`
	Prompt      string
	Options     datatypes.JSON
	AnswerIndex int32
	Position    int32
}

func (listeningQuestionRow) TableName() string { return "listening_questions" }

type listeningRecordRow struct {
	ID             int64 `gorm:"primaryKey"`
	UserID         int64 `gorm:"uniqueIndex:idx_listening_user_question"`
	PassageID      int64 `gorm:"index"`
	QuestionID     int64 `gorm:"uniqueIndex:idx_listening_user_question"`
	CorrectCount   int32
	TotalCount     int32
	LastAnsweredAt time.Time
}

func (listeningRecordRow) TableName() string { return "listening_records" }

type soundChangeCategoryRow struct {
	ID          int64 `gorm:"primaryKey"`
	Name        string
	Kind        string
	Description string
	Items       []soundChangeItemRow `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (soundChangeCategoryRow) TableName() string { return "sound_change_categories" }

type soundChangeItemRow struct {
	ID         int64 `gorm:"primaryKey"`
	CategoryID int64 `gorm:"index"`
	Written    string
	Spoken     string
	AudioURL   string
	Position   int32
}

func (soundChangeItemRow) TableName() string { return "sound_change_items" }

type soundChangeRecordRow struct {
	ID              int64 `gorm:"primaryKey"`
	UserID          int64 `gorm:"uniqueIndex:idx_soundchange_user_item"`
	CategoryID      int64 `gorm:"index"`
	ItemID          int64 `gorm:"uniqueIndex:idx_soundchange_user_item"`
	CorrectCount    int32
	TotalCount      int32
	LastPracticedAt time.Time
}

func (soundChangeRecordRow) TableName() string { return "sound_change_records" }

// Models lists every row type for schema migration.
func Models() []any {
	return []any{
		&lessonRow{},
		&qaItemRow{},
		&wordRow{},
		&practiceRecordRow{},
		&passageRow{},
		&listeningQuestionRow{},
		&listeningRecordRow{},
		&soundChangeCategoryRow{},
		&soundChangeItemRow{},
		&soundChangeRecordRow{},
	}
}
