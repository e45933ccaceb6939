package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"greencalc/internal/config"
	"greencalc/internal/repository"
	"greencalc/internal/repository/mongodb"
	sheetsrepo "greencalc/internal/repository/sheets"
	"greencalc/internal/repository/sqlite"
	"greencalc/internal/scheduler"
	"greencalc/internal/server/handlers"
	"greencalc/internal/server/router"
	"greencalc/internal/service/calculator"
	"greencalc/internal/service/countries"
	reportingsvc "greencalc/internal/service/reporting"
	"greencalc/pkg/clients/restcountries"
	"greencalc/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	historyRepo := newHistoryRepository(cfg, baseLogger)
	defer closeHistoryRepository(historyRepo, baseLogger)

	countriesClient := restcountries.NewClient(cfg.Countries)
	directory := countries.NewDirectory(countriesClient, baseLogger.Named("svc.countries"))

	// Seed the directory once at startup; the static fallback list keeps the
	// calculator usable when the remote fetch fails.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 15*time.Second)
	if err := directory.Refresh(seedCtx); err != nil {
		baseLogger.Warn("initial country fetch failed, using fallback list", zap.Error(err))
	}
	cancelSeed()

	var profile calculator.Profile = calculator.NeutralProfile{}
	if cfg.Calculator.UseLatitudeProfile {
		profile = calculator.LatitudeProfile{}
		baseLogger.Info("latitude economics profile enabled")
	}
	engine := calculator.NewEngine(calculator.DefaultTables(), profile, baseLogger.Named("svc.calculator"))

	var reportingService *reportingsvc.Service
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheetsrepo.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingService = reportingsvc.NewService(historyRepo, sheetsRepo, baseLogger.Named("svc.reporting"))
		baseLogger.Info("sheets history export enabled")
	}

	calcHandler := handlers.NewCalculatorHandler(engine, directory, historyRepo, baseLogger.Named("handlers.calculator"))
	adminHandler := handlers.NewAdminHandler(historyRepo, cfg.Admin.Key, baseLogger.Named("handlers.admin"))
	engineRouter := router.New(calcHandler, adminHandler, *cfg, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, directory, reportingService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engineRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newHistoryRepository selects the configured history backend.
func newHistoryRepository(cfg *config.Config, baseLogger *zap.Logger) repository.HistoryRepository {
	switch cfg.History.Backend {
	case config.BackendMongoDB:
		repo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.History.MongoURI, cfg.History.MongoDBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		return repo
	default:
		repo, err := sqlite.NewSQLiteRepository(cfg.History.SQLitePath)
		if err != nil {
			baseLogger.Fatal("failed to init sqlite repository", zap.Error(err))
		}
		return repo
	}
}

func closeHistoryRepository(repo repository.HistoryRepository, baseLogger *zap.Logger) {
	switch r := repo.(type) {
	case *sqlite.SQLiteRepository:
		if err := r.Close(); err != nil {
			baseLogger.Error("failed to close sqlite database", zap.Error(err))
		}
	case *mongodb.MongoDBRepository:
		if err := r.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}
