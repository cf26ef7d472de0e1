package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/usecase"
)

// WordHandler serves the personal vocabulary endpoints.
type WordHandler struct {
	words usecase.WordUsecase
}

func NewWordHandler(words usecase.WordUsecase) *WordHandler {
	return &WordHandler{words: words}
}

// GET /api/v1/words
func (h *WordHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	query := &repository.ListWordQuery{
		Pagination:  pagination(c),
		FilterOrder: filterOrder(c),
		UserID:      userID,
	}
	words, total, err := h.words.ListWords(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[wordResponse]{
		Total: total,
		Items: lo.Map(words, func(word entity.Word, _ int) wordResponse {
			return toWordPayload(&word)
		}),
	})
}

// POST /api/v1/words
func (h *WordHandler) Collect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload collectWordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	word, err := h.words.CollectWord(c.Request.Context(), userID, &entity.Word{
		Term:        payload.Term,
		Language:    entity.Language(payload.Language),
		Translation: payload.Translation,
		Notes:       payload.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWordPayload(word))
}

// GET /api/v1/words/due
func (h *WordHandler) Due(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit := queryInt32(c, "limit", 20)
	words, err := h.words.ListDueWords(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[wordResponse]{
		Total: int64(len(words)),
		Items: lo.Map(words, func(word entity.Word, _ int) wordResponse {
			return toWordPayload(&word)
		}),
	})
}

// POST /api/v1/words/:id/review
func (h *WordHandler) Review(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload reviewWordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	word, err := h.words.ReviewWord(c.Request.Context(), userID, id, usecase.ReviewOutcome{
		Correct: payload.Correct,
		Quality: payload.Quality,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWordPayload(word))
}

// DELETE /api/v1/words/:id
func (h *WordHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.words.DeleteWord(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
