package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/usecase"
)

// PracticeHandler serves the Callan drilling endpoints.
type PracticeHandler struct {
	practice usecase.PracticeUsecase
}

func NewPracticeHandler(practice usecase.PracticeUsecase) *PracticeHandler {
	return &PracticeHandler{practice: practice}
}

// POST /api/v1/practice/records
func (h *PracticeHandler) Record(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload practiceAttemptPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode := entity.ParsePracticeMode(payload.Mode)
	err := h.practice.RecordAttempt(c.Request.Context(), userID, payload.ItemID, mode, payload.Correct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/practice/lessons
func (h *PracticeHandler) LessonProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	progress, err := h.practice.LessonProgress(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[lessonProgressResponse]{
		Total: int64(len(progress)),
		Items: lo.Map(progress, func(p entity.LessonProgress, _ int) lessonProgressResponse {
			return toLessonProgressPayload(p)
		}),
	})
}

// GET /api/v1/practice/summary
func (h *PracticeHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := h.practice.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPracticeSummaryPayload(summary))
}
