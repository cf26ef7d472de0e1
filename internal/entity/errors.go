package entity

import "errors"

// Domain errors shared by usecases and adapters.
var (
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrInvalidLessonTitle  = errors.New("invalid lesson title")
	ErrItemNotFound        = errors.New("practice item not found")
	ErrInvalidPracticeMode = errors.New("invalid practice mode")

	ErrWordNotFound         = errors.New("word not found")
	ErrInvalidWordTerm      = errors.New("invalid word term")
	ErrDuplicateWord        = errors.New("word already collected")
	ErrInvalidReviewOutcome = errors.New("review requires a correct flag or a quality grade")

	ErrPassageNotFound         = errors.New("passage not found")
	ErrInvalidPassageTitle     = errors.New("invalid passage title")
	ErrQuestionNotFound        = errors.New("listening question not found")
	ErrCategoryNotFound        = errors.New("sound change category not found")
	ErrInvalidCategoryName     = errors.New("invalid sound change category name")
	ErrSoundChangeItemNotFound = errors.New("sound change item not found")

	ErrInvalidUserID = errors.New("invalid user ID")
)
