package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/canadaclubjp/quiz-app/internal/cache"
	"github.com/canadaclubjp/quiz-app/internal/config"
	"github.com/canadaclubjp/quiz-app/internal/handlers"
	"github.com/canadaclubjp/quiz-app/internal/media"
	"github.com/canadaclubjp/quiz-app/internal/repositories/postgres"
	"github.com/canadaclubjp/quiz-app/internal/roster"
	"github.com/canadaclubjp/quiz-app/internal/services"
	"github.com/canadaclubjp/quiz-app/internal/sheets"
	"github.com/canadaclubjp/quiz-app/internal/utils"
	"github.com/canadaclubjp/quiz-app/internal/validator"
	"github.com/canadaclubjp/quiz-app/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	repo := postgres.NewRepository(db)

	resultSheets, rosterSheets, err := newWorksheets(cfg)
	if err != nil {
		logger.Error("Failed to initialize spreadsheet backend", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}
	mirror := sheets.NewMirror(resultSheets, slogger, loc)

	rosterCheck := roster.NewWorksheetRoster(rosterSheets, cfg.RosterSheet, slogger)
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		// The roster still works without the cache, just slower.
		logger.Warn("Redis unavailable, roster lookups will not be cached", "error", err)
	} else {
		cacheService := cache.NewRedisCache(redisClient, slogger)
		rosterCheck = roster.NewCachedRoster(rosterCheck, cacheService, cfg.RosterCacheTTL, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(
		repo, rosterCheck, mirror, publisher, slogger, validator.New())

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.LoggerMiddleware(logger))

	handlers.NewHandlerManager(serviceManager, media.NewProxy(nil), cfg.FrontendBaseURL, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	if err := repo.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}

// newWorksheets selects the spreadsheet backend: the results document for
// mirroring and the roster document for enrollment checks. The workbook
// backend keeps both in one local file.
func newWorksheets(cfg *config.Config) (sheets.Worksheets, sheets.Worksheets, error) {
	if cfg.MirrorBackend == "workbook" {
		wb := sheets.NewWorkbookWorksheets(cfg.WorkbookPath)
		return wb, wb, nil
	}

	creds, err := cfg.GoogleCredentials()
	if err != nil {
		return nil, nil, err
	}
	resultsWS, err := sheets.NewGoogleWorksheets(context.Background(), creds, cfg.ResultsSpreadsheetID)
	if err != nil {
		return nil, nil, err
	}
	rosterWS, err := sheets.NewGoogleWorksheets(context.Background(), creds, cfg.RosterSpreadsheetID)
	if err != nil {
		return nil, nil, err
	}
	return resultsWS, rosterWS, nil
}
