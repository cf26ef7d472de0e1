package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
	"github.com/eslkits/drillbox/internal/usecase"
)

// LessonHandler serves the lesson catalog endpoints.
type LessonHandler struct {
	lessons usecase.LessonUsecase
}

func NewLessonHandler(lessons usecase.LessonUsecase) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// GET /api/v1/lessons
func (h *LessonHandler) List(c *gin.Context) {
	query := &repository.ListLessonQuery{
		Pagination:  pagination(c),
		FilterOrder: filterOrder(c),
	}
	lessons, total, err := h.lessons.ListLessons(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[lessonResponse]{
		Total: total,
		Items: lo.Map(lessons, func(lesson entity.Lesson, _ int) lessonResponse {
			return toLessonPayload(&lesson)
		}),
	})
}

// POST /api/v1/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var payload lessonPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lesson, err := h.lessons.CreateLesson(c.Request.Context(), payload.toEntity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLessonPayload(lesson))
}

// GET /api/v1/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lesson, err := h.lessons.GetLesson(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLessonPayload(lesson))
}

// PUT /api/v1/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload lessonPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lesson := payload.toEntity()
	lesson.ID = id
	updated, err := h.lessons.UpdateLesson(c.Request.Context(), lesson)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLessonPayload(updated))
}

// DELETE /api/v1/lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.lessons.DeleteLesson(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
