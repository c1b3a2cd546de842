package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-disguise/internal/data/db"
	sessionstore "github.com/yungbote/neurobridge-disguise/internal/data/session"
	httpserver "github.com/yungbote/neurobridge-disguise/internal/http"
	"github.com/yungbote/neurobridge-disguise/internal/observability"
	"github.com/yungbote/neurobridge-disguise/internal/platform/config"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      config.Config
	Repos    Repos
	Services Services
	Sessions sessionstore.Store

	dbService    *db.Service
	redis        *goredis.Client
	otelShutdown observability.ShutdownFunc
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenDB connects and migrates the database described by cfg.
func OpenDB(log *logger.Logger, cfg config.DatabaseConfig) (*db.Service, error) {
	svc, err := db.NewService(log, cfg)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(svc.DB()); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return svc, nil
}

func New(ctx context.Context) (*App, error) {
	log, err := NewLogger()
	if err != nil {
		return nil, err
	}
	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(ctx, log, cfg)
}

// NewWithConfig wires the app from an already loaded config.
func NewWithConfig(ctx context.Context, log *logger.Logger, cfg config.Config) (*App, error) {
	shutdown, err := observability.SetupTracing(ctx, log, cfg.OTel)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}

	dbService, err := OpenDB(log, cfg.Database)
	if err != nil {
		log.Sync()
		return nil, err
	}
	theDB := dbService.DB()

	sessions, rdb, err := wireSessionStore(ctx, log, cfg.Redis)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, sessions)

	sqlDB, err := theDB.DB()
	if err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	handlerset := wireHandlers(log, serviceset, sqlDB)
	middleware := wireMiddleware(log, cfg, serviceset, sessions)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Sessions:     sessions,
		dbService:    dbService,
		redis:        rdb,
		otelShutdown: shutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context, addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := &httpserver.Server{Engine: a.Router}
	return srv.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.dbService != nil {
		_ = a.dbService.Close()
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
