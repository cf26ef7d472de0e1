package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Lesson      *LessonHandler
	Word        *WordHandler
	Practice    *PracticeHandler
	Listening   *ListeningHandler
	SoundChange *SoundChangeHandler
}

// Register mounts all routes on the engine.
func Register(r *gin.Engine, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	lessons := api.Group("/lessons")
	{
		lessons.GET("", h.Lesson.List)
		lessons.POST("", h.Lesson.Create)
		lessons.GET("/:id", h.Lesson.Get)
		lessons.PUT("/:id", h.Lesson.Update)
		lessons.DELETE("/:id", h.Lesson.Delete)
	}

	words := api.Group("/words")
	{
		words.GET("", h.Word.List)
		words.POST("", h.Word.Collect)
		words.GET("/due", h.Word.Due)
		words.POST("/:id/review", h.Word.Review)
		words.DELETE("/:id", h.Word.Delete)
	}

	practice := api.Group("/practice")
	{
		practice.POST("/records", h.Practice.Record)
		practice.GET("/lessons", h.Practice.LessonProgress)
		practice.GET("/summary", h.Practice.Summary)
	}

	listening := api.Group("/listening")
	{
		listening.GET("/passages", h.Listening.List)
		listening.POST("/passages", h.Listening.Create)
		listening.GET("/passages/:id", h.Listening.Get)
		listening.DELETE("/passages/:id", h.Listening.Delete)
		listening.POST("/answers", h.Listening.RecordAnswer)
		listening.GET("/summary", h.Listening.Summary)
	}

	soundchange := api.Group("/soundchange")
	{
		soundchange.GET("/categories", h.SoundChange.List)
		soundchange.POST("/categories", h.SoundChange.Create)
		soundchange.GET("/categories/:id", h.SoundChange.Get)
		soundchange.DELETE("/categories/:id", h.SoundChange.Delete)
		soundchange.POST("/attempts", h.SoundChange.RecordAttempt)
		soundchange.GET("/summary", h.SoundChange.Summary)
	}
}
