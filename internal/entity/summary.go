package entity

// Derived aggregate value objects. These are recomputed from the
// current progress rows on every request and never persisted.

// ModeSummary reports one drilling mode's correctness totals.
type ModeSummary struct {
	Total    int32
	Correct  int32
	Accuracy int32
}

// ShadowingSummary reports shadowing practice volume. Shadowing has no
// correctness judgement, so it carries a raw practiced count where the
// other modes carry an accuracy.
type ShadowingSummary struct {
	Total     int32
	Practiced int32
}

// PracticeSummary is the catalog-wide Callan drilling aggregate.
type PracticeSummary struct {
	TotalLessons     int32
	CompletedLessons int32
	TotalQAItems     int32
	PracticedQAItems int32
	QA               ModeSummary
	Shadowing        ShadowingSummary
	Dictation        ModeSummary
	StreakDays       int32
}

// ListeningSummary is the listening comprehension aggregate.
type ListeningSummary struct {
	TotalPassages     int32
	CompletedPassages int32
	TotalQuestions    int32
	AnsweredQuestions int32
	CorrectAnswers    int32
	Accuracy          int32
}

// SoundChangeSummary is the pronunciation drilling aggregate.
type SoundChangeSummary struct {
	TotalCategories     int32
	CompletedCategories int32
	TotalItems          int32
	PracticedItems      int32
	Accuracy            int32
}
