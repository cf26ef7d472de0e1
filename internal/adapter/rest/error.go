package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/pkg/filterexpr"
)

// respondError maps domain errors onto HTTP statuses. Unrecognized
// errors become 500s with a generic body; the cause goes to the log,
// not the client.
func respondError(c *gin.Context, err error) {
	switch {
	case isInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrDuplicateWord):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isInvalidInput(err error) bool {
	for _, target := range []error{
		entity.ErrInvalidLessonTitle,
		entity.ErrInvalidPracticeMode,
		entity.ErrInvalidWordTerm,
		entity.ErrInvalidReviewOutcome,
		entity.ErrInvalidPassageTitle,
		entity.ErrInvalidCategoryName,
		entity.ErrInvalidUserID,
		filterexpr.ErrInvalidExpr,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	for _, target := range []error{
		entity.ErrLessonNotFound,
		entity.ErrItemNotFound,
		entity.ErrWordNotFound,
		entity.ErrPassageNotFound,
		entity.ErrQuestionNotFound,
		entity.ErrCategoryNotFound,
		entity.ErrSoundChangeItemNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
