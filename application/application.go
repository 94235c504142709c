package application

import (
	"context"

	"github.com/jmoiron/sqlx"

	"campusAssistant/calendar"
	"campusAssistant/config"
	"campusAssistant/database"
	"campusAssistant/logger"
	"campusAssistant/maxAPI"
	"campusAssistant/scheduler"
	"campusAssistant/teachers"
	"campusAssistant/timetable"
)

type Application struct {
	DB        *sqlx.DB
	Projector *timetable.Projector
	Directory *teachers.Directory
	Favorites *teachers.Favorites
	Scheduler *scheduler.Scheduler
	logger    *logger.Logger
}

func NewApplication() *Application {
	return &Application{}
}

func (app *Application) Configure(cfg *config.Config, log *logger.Logger, ctx context.Context) error {
	app.logger = log

	db, err := database.OpenDB(&cfg.Database)
	if err != nil {
		return err
	}
	app.DB = db

	source, err := timetableSource(&cfg.Timetable)
	if err != nil {
		_ = db.Close()
		return err
	}

	loader := timetable.NewLoader(source, cfg.Timetable.CacheTTL, log)
	cal := calendar.Load(cfg.Calendar.Path)

	app.Projector = timetable.NewProjector(loader, cal)
	app.Directory = teachers.NewDirectory(loader)
	app.Favorites = teachers.NewFavorites(database.NewFavoriteTeacherRepository(db))

	sender, err := maxAPI.NewSender(&cfg.MaxAPI, log, ctx)
	if err != nil {
		_ = db.Close()
		return err
	}

	app.Scheduler = scheduler.New(
		&cfg.Scheduler,
		log,
		app.Projector,
		database.NewUserRepository(db),
		database.NewDeadlineRepository(db),
		database.NewEventRepository(db),
		sender,
	)

	return nil
}

func (app *Application) Run(ctx context.Context) {
	app.Scheduler.Start(ctx)
	<-ctx.Done()
}

// Датасет читается из MinIO, когда задан endpoint, иначе из локального файла.
func timetableSource(cfg *config.TimetableConfig) (timetable.Source, error) {
	if cfg.MinIO.Endpoint == "" {
		return timetable.NewFileSource(cfg.Path), nil
	}
	return timetable.NewMinIOSource(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket,
		cfg.MinIO.Object,
		cfg.MinIO.UseSSL,
	)
}
