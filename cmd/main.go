package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volunteerhub-backend/cmd/config"
	migration "volunteerhub-backend/cmd/database/migrate"
	"volunteerhub-backend/internal/utils"
	"volunteerhub-backend/internal/utils/logging"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	utils.LoadConfig()

	logger, err := logging.InitLogger(utils.GetConfig("APP_ENV"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := migration.Migrate(db, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	app, err := config.NewApp(db, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	go func() {
		port := utils.GetConfig("APP_PORT")
		logger.Info("server listening", zap.String("port", port))
		if err := app.Listen(":" + port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
