package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fulfillment: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *gorm.DB
	if cfg.StorageDriver == cmd.StorageDriverPostgres {
		db, err = openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(db, log)
	}

	app, err := cmd.NewCompositionRoot(ctx, cfg, db, log)
	if err != nil {
		return fmt.Errorf("compose application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("closing outbound connections", zap.Error(err))
		}
	}()

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), log)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	dispatcher := app.Dispatcher()
	dispatcher.Start()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		log.Info("http server listening", zap.String("addr", addr), zap.String("storage", cfg.StorageDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		httpErr := e.Shutdown(shutdownCtx)
		jobManager.StopAll()
		return errors.Join(httpErr, dispatcher.Stop(shutdownCtx))
	})

	return g.Wait()
}

func openDatabase(cfg cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("closing database", zap.Error(err))
	}
}
