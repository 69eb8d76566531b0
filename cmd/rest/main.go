package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clipnote-be/internal/bootstrap"
	"clipnote-be/internal/config"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/server"
	"clipnote-be/internal/tracer"
	"clipnote-be/pkg/database"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer appLogger.Sync()

	shutdownTracer := tracer.InitTracer()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		appLogger.Error("main", "database connection failed", map[string]interface{}{"error": err.Error()})
		log.Fatalf("failed to connect to database: %v", err)
	}

	container := bootstrap.NewContainer(cfg, db, appLogger)
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go container.Hub.Run(ctx)
	go func() {
		if err := container.SyncService.Run(ctx); err != nil {
			appLogger.Error("main", "sync consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	if err := container.ActivityService.Start(container.NatsSubscriber); err != nil {
		appLogger.Warn("main", "activity worker failed to start", map[string]interface{}{"error": err.Error()})
	}

	srv := server.New(container)

	go func() {
		appLogger.Info("main", "server starting", map[string]interface{}{"port": cfg.App.Port})
		if err := srv.Listen(":" + cfg.App.Port); err != nil {
			appLogger.Error("main", "server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("main", "shutting down", nil)
	cancel()
	if err := srv.Shutdown(); err != nil {
		appLogger.Error("main", "shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(context.Background()); err != nil {
		appLogger.Warn("main", "tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
