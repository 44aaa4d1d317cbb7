// Package main is the entry point for the stock ledger API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"doccstock/internal/config"
	"doccstock/internal/domain/auth"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/domain/pba"
	"doccstock/internal/domain/reports"
	v1 "doccstock/internal/infrastructure/http/v1"
	"doccstock/internal/infrastructure/http/v1/middleware"
	"doccstock/internal/infrastructure/storage/postgres"
	"doccstock/internal/infrastructure/storage/postgres/auth_repo"
	"doccstock/internal/infrastructure/storage/postgres/ledger_repo"
	"doccstock/internal/infrastructure/storage/postgres/pba_repo"
	"doccstock/internal/infrastructure/storage/postgres/report_repo"
	"doccstock/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "path to .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting server", "app", cfg.App.Name, "env", cfg.App.Env, "version", cfg.App.Version)

	// --- Database ---
	dsn := cfg.Database.DSN()
	if cfg.Database.AutoMigrate {
		if err := postgres.MigrateUp(ctx, dsn); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
	}

	poolCfg := postgres.DefaultPoolConfig(dsn)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	pool.LogStats(ctx)

	txOpts := postgres.DefaultTxOptions()
	txOpts.StatementTimeout = cfg.Database.StatementTimeout
	txManager := postgres.NewTxManagerWithOptions(pool.Pool, txOpts)

	// --- Services ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	})
	authService := auth.NewService(auth_repo.NewUserRepo(txManager), jwtService)

	pbaService := pba.NewService(pba_repo.NewProductTypeRepo(txManager))
	ledgerService := ledger.NewService(ledger_repo.NewDailyStockRepo(txManager), pbaService, txManager)
	reportService := reports.NewService(
		report_repo.NewReportRepo(txManager),
		pbaService,
		ledger.Thresholds{
			Critical: cfg.Stock.CriticalThreshold,
			Low:      cfg.Stock.LowThreshold,
		},
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:        log,
		JWTValidator:  jwtService,
		AuthService:   authService,
		PbaTypes:      pbaService,
		LedgerService: ledgerService,
		ReportService: reportService,
		Database:      pool,
		AppName:       cfg.App.Name,
		AppVersion:    cfg.App.Version,
		CORS:          middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins),
		Location:      cfg.Stock.Location(),
		Debug:         cfg.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port, "timezone", cfg.Stock.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
