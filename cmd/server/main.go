package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"pantry-tracker/internal/api"
	"pantry-tracker/internal/config"
	"pantry-tracker/internal/database"
	"pantry-tracker/internal/scheduler"
	"pantry-tracker/internal/service/inventory"
	"pantry-tracker/internal/store"
	"pantry-tracker/internal/websocket"
	"pantry-tracker/pkg/logger"
)

func main() {
	cfg := config.Load()

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		baseLogger.Fatal("failed to init store", zap.Error(err))
	}
	defer st.Close()

	hub := websocket.NewHub(baseLogger.Named("websocket"))
	go hub.Run()

	svc := inventory.NewService(st, hub, baseLogger.Named("inventory"))

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelLoad()
	if err := svc.Load(loadCtx); err != nil {
		baseLogger.Fatal("failed to load collections", zap.Error(err))
	}

	sched := scheduler.NewScheduler(cfg.Snapshot, svc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	router := api.SetupRouter(svc, hub, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("storage", cfg.Storage.Driver))
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

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Driver {
	case "file":
		return store.NewFileStore(cfg.Storage.DataDir)
	case "postgres":
		db, err := database.Connect(context.Background(), cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		return store.NewPostgresStore(db), nil
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
