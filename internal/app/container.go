package app

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	adapterrepo "github.com/eslkits/drillbox/internal/adapter/repository"
	"github.com/eslkits/drillbox/internal/adapter/rest"
	"github.com/eslkits/drillbox/internal/infrastructure/config"
	"github.com/eslkits/drillbox/internal/infrastructure/database"
	"github.com/eslkits/drillbox/internal/infrastructure/server"
	"github.com/eslkits/drillbox/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *gorm.DB
	Server *server.Server

	Lessons     usecase.LessonUsecase
	Words       usecase.WordUsecase
	Practice    usecase.PracticeUsecase
	Listening   usecase.ListeningUsecase
	SoundChange usecase.SoundChangeUsecase
}

// NewContainer wires repositories, usecases, handlers and the server
// in dependency order.
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	db, err := database.NewConnection(cfg, logger)
	if err != nil {
		return nil, err
	}

	lessonRepo := adapterrepo.NewLessonRepository(db)
	wordRepo := adapterrepo.NewWordRepository(db)
	practiceRepo := adapterrepo.NewPracticeRepository(db)
	passageRepo := adapterrepo.NewPassageRepository(db)
	listeningRepo := adapterrepo.NewListeningProgressRepository(db)
	categoryRepo := adapterrepo.NewSoundChangeRepository(db)
	soundProgressRepo := adapterrepo.NewSoundChangeProgressRepository(db)

	lessons := usecase.NewLessonUsecase(lessonRepo)
	words := usecase.NewWordUsecase(wordRepo)
	practice := usecase.NewPracticeUsecase(lessonRepo, practiceRepo)
	listening := usecase.NewListeningUsecase(passageRepo, listeningRepo)
	soundchange := usecase.NewSoundChangeUsecase(categoryRepo, soundProgressRepo)

	handlers := rest.Handlers{
		Lesson:      rest.NewLessonHandler(lessons),
		Word:        rest.NewWordHandler(words),
		Practice:    rest.NewPracticeHandler(practice),
		Listening:   rest.NewListeningHandler(listening),
		SoundChange: rest.NewSoundChangeHandler(soundchange),
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Server:      server.NewServer(cfg, logger, handlers),
		Lessons:     lessons,
		Words:       words,
		Practice:    practice,
		Listening:   listening,
		SoundChange: soundchange,
	}, nil
}
