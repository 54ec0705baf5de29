package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gorm.io/gorm"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/nodaire/dashhub/backend"
	"github.com/nodaire/dashhub/config"
	"github.com/nodaire/dashhub/db"
	"github.com/nodaire/dashhub/events"
	"github.com/nodaire/dashhub/logger"
	"github.com/nodaire/dashhub/pkg/version"
	"github.com/nodaire/dashhub/state"
)

type service struct {
	cfg config.Config

	db             *gorm.DB
	backendClient  backend.Client
	stateManager   *state.Manager
	eventPublisher events.EventPublisher
	ctx            context.Context
}

func NewService(ctx context.Context) (*service, error) {
	// Load config from environment variables / .env file
	godotenv.Load(".env")
	appConfig := &config.AppConfig{}
	err := envconfig.Process("", appConfig)
	if err != nil {
		return nil, err
	}

	logger.Init(appConfig.LogLevel)
	logger.Logger.Info().Msg("Dashhub " + version.Tag)

	if appConfig.Workdir == "" {
		appConfig.Workdir = filepath.Join(xdg.DataHome, "dashhub")
		logger.Logger.Info().Interface("workdir", appConfig.Workdir).Msg("No workdir specified, using default")
	}
	// make sure workdir exists
	os.MkdirAll(appConfig.Workdir, os.ModePerm)

	if appConfig.LogToFile {
		err = logger.AddFileLogger(appConfig.Workdir)
		if err != nil {
			return nil, err
		}
	}

	// If DATABASE_URI is a URI or a path, leave it unchanged.
	// If it only contains a filename, prepend the workdir.
	if !strings.HasPrefix(appConfig.DatabaseUri, "file:") && appConfig.DatabaseUri != ":memory:" {
		databasePath, _ := filepath.Split(appConfig.DatabaseUri)
		if databasePath == "" {
			appConfig.DatabaseUri = filepath.Join(appConfig.Workdir, appConfig.DatabaseUri)
		}
	}

	gormDB, err := db.NewDB(appConfig.DatabaseUri, appConfig.LogDBQueries)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewConfig(appConfig, gormDB)
	if err != nil {
		return nil, err
	}

	eventPublisher := events.NewEventPublisher()

	backendClient := backend.NewClient(cfg)
	stateManager := state.NewManager(ctx, backendClient, eventPublisher)

	svc := &service{
		cfg:            cfg,
		ctx:            ctx,
		db:             gormDB,
		eventPublisher: eventPublisher,
		backendClient:  backendClient,
		stateManager:   stateManager,
	}

	eventPublisher.SetGlobalProperty("version", version.Tag)
	eventPublisher.Publish(&events.Event{
		Event: "dashhub_started",
		Properties: map[string]interface{}{
			"version": version.Tag,
		},
	})

	// optionally warm all four slices so the first page load hits cache
	if appConfig.Preload {
		for _, name := range state.SliceNames() {
			if err := stateManager.Load(name, false); err != nil {
				logger.Logger.Error().Err(err).Str("slice", string(name)).Msg("Failed to preload slice")
			}
		}
	}

	return svc, nil
}

func (svc *service) Shutdown() {
	svc.eventPublisher.PublishSync(&events.Event{
		Event: "dashhub_stopped",
	})
	db.Stop(svc.db)
}

func (svc *service) GetDB() *gorm.DB {
	return svc.db
}

func (svc *service) GetConfig() config.Config {
	return svc.cfg
}

func (svc *service) GetEventPublisher() events.EventPublisher {
	return svc.eventPublisher
}

func (svc *service) GetBackendClient() backend.Client {
	return svc.backendClient
}

func (svc *service) GetStateManager() *state.Manager {
	return svc.stateManager
}
