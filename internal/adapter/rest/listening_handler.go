package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/usecase"
)

// ListeningHandler serves the listening comprehension endpoints.
type ListeningHandler struct {
	listening usecase.ListeningUsecase
}

func NewListeningHandler(listening usecase.ListeningUsecase) *ListeningHandler {
	return &ListeningHandler{listening: listening}
}

// GET /api/v1/listening/passages
func (h *ListeningHandler) List(c *gin.Context) {
	query := &repository.ListPassageQuery{
		Pagination:  pagination(c),
		FilterOrder: filterOrder(c),
	}
	passages, total, err := h.listening.ListPassages(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[passageResponse]{
		Total: total,
		Items: lo.Map(passages, func(passage entity.Passage, _ int) passageResponse {
			return toPassagePayload(&passage)
		}),
	})
}

// POST /api/v1/listening/passages
func (h *ListeningHandler) Create(c *gin.Context) {
	var payload passagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	passage, err := h.listening.CreatePassage(c.Request.Context(), payload.toEntity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPassagePayload(passage))
}

// GET /api/v1/listening/passages/:id
func (h *ListeningHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	passage, err := h.listening.GetPassage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassagePayload(passage))
}

// DELETE /api/v1/listening/passages/:id
func (h *ListeningHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.listening.DeletePassage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/v1/listening/answers
func (h *ListeningHandler) RecordAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload listeningAnswerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.listening.RecordAnswer(c.Request.Context(), userID, payload.QuestionID, payload.Correct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/listening/summary
func (h *ListeningHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := h.listening.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listeningSummaryResponse{
		TotalPassages:     summary.TotalPassages,
		CompletedPassages: summary.CompletedPassages,
		TotalQuestions:    summary.TotalQuestions,
		AnsweredQuestions: summary.AnsweredQuestions,
		CorrectAnswers:    summary.CorrectAnswers,
		Accuracy:          summary.Accuracy,
	})
}
