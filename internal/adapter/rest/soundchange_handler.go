package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/usecase"
)

// SoundChangeHandler serves the pronunciation drilling endpoints.
type SoundChangeHandler struct {
	soundchange usecase.SoundChangeUsecase
}

func NewSoundChangeHandler(soundchange usecase.SoundChangeUsecase) *SoundChangeHandler {
	return &SoundChangeHandler{soundchange: soundchange}
}

// GET /api/v1/soundchange/categories
func (h *SoundChangeHandler) List(c *gin.Context) {
	query := &repository.ListCategoryQuery{
		Pagination:  pagination(c),
		FilterOrder: filterOrder(c),
	}
	categories, total, err := h.soundchange.ListCategories(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[categoryResponse]{
		Total: total,
		Items: lo.Map(categories, func(category entity.SoundChangeCategory, _ int) categoryResponse {
			return toCategoryPayload(&category)
		}),
	})
}

// POST /api/v1/soundchange/categories
func (h *SoundChangeHandler) Create(c *gin.Context) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if entity.ParseSoundChangeKind(payload.Kind) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sound change kind"})
		return
	}
	category, err := h.soundchange.CreateCategory(c.Request.Context(), payload.toEntity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryPayload(category))
}

// GET /api/v1/soundchange/categories/:id
func (h *SoundChangeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.soundchange.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryPayload(category))
}

// DELETE /api/v1/soundchange/categories/:id
func (h *SoundChangeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.soundchange.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/v1/soundchange/attempts
func (h *SoundChangeHandler) RecordAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var payload soundChangeAttemptPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.soundchange.RecordAttempt(c.Request.Context(), userID, payload.ItemID, payload.Correct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/soundchange/summary
func (h *SoundChangeHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := h.soundchange.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, soundChangeSummaryResponse{
		TotalCategories:     summary.TotalCategories,
		CompletedCategories: summary.CompletedCategories,
		TotalItems:          summary.TotalItems,
		PracticedItems:      summary.PracticedItems,
		Accuracy:            summary.Accuracy,
	})
}
