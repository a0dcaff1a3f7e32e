package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"carbontrack/carbontrack-backend/internal/analytics"
	"carbontrack/carbontrack-backend/internal/config"
	"carbontrack/carbontrack-backend/internal/emissions"
	"carbontrack/carbontrack-backend/internal/reports"
	"carbontrack/carbontrack-backend/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	client, err := mongo.Connect(ctx, mongoopts.Client().ApplyURI(cfg.Mongo.URI))
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	db := client.Database(cfg.Mongo.Database)

	emissionRepo := emissions.NewRepository(db)
	engine := analytics.NewEngine(emissionRepo)
	service := reports.NewService(engine, emissionRepo, users.NewRepository(db), reports.NewRepository(db))

	worker := reports.NewWeeklyReportWorker(service, logger, os.Getenv("WEEKLY_REPORT_SCHEDULE"))
	if err := worker.Start(); err != nil {
		logger.Fatal("failed to start weekly report worker", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	worker.Stop()

	if err := client.Disconnect(context.Background()); err != nil {
		logger.Error("failed to disconnect from MongoDB", zap.Error(err))
	}
}
