package app

import (
	"context"

	"raftwatch/config"
	"raftwatch/internal/controllers"
	"raftwatch/internal/database"
	"raftwatch/internal/events"
	"raftwatch/internal/handlers/middleware"
	"raftwatch/internal/jobs"
	"raftwatch/internal/logger"
	"raftwatch/internal/repositories"
	"raftwatch/internal/services"
	"raftwatch/internal/websockets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Services         services.Service
	SchedulerService *services.SchedulerService
	Repos            repositories.Repository
	Controllers      controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	service, err := services.New(db, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}
	repos := repositories.New(db)

	websocket, err := websockets.New(eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, eventBus, config)
	controllers := controllers.New(service, config)

	if config.SchedulerEnabled {
		evaluationJob := jobs.NewComplianceEvaluationJob(service.Compliance, services.Daily)
		if err := service.Scheduler.AddJob(evaluationJob); err != nil {
			return &App{}, log.Err("failed to register compliance evaluation job", err)
		}
		log.Info("Registered compliance evaluation job with scheduler")

		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:         db,
		Config:           config,
		Middleware:       middleware,
		Websocket:        websocket,
		EventBus:         eventBus,
		Services:         service,
		SchedulerService: service.Scheduler,
		Repos:            repos,
		Controllers:      controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.SchedulerService,
		a.Services.Transaction,
		a.Services.Compliance,
		a.Services.Inspection,
		a.Services.Alert,
		a.Services.Statistics,
		a.Controllers.Alert,
		a.Controllers.Inspection,
		a.Controllers.Report,
		a.Repos.Alert,
		a.Repos.Inspection,
		a.Repos.Cylinder,
		a.Repos.Stock,
		a.Repos.Schedule,
		a.Repos.Catalog,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
