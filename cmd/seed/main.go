// Command seed connects to MongoDB and writes one sample employee record.
// Failures are logged; the process still exits with status 0.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gartstein/employees/internal/employee/config"
	"github.com/gartstein/employees/internal/employee/controller"
	"github.com/gartstein/employees/internal/employee/db"
	"github.com/gartstein/employees/internal/employee/events"
	"github.com/gartstein/employees/internal/employee/seed"
	applog "github.com/gartstein/employees/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := applog.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx := context.Background()
	repo, err := db.NewRepository(ctx, initDatabase(cfg))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", zap.Error(err))
		return
	}
	logger.Info("Connected to MongoDB")
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Error("Failed to close MongoDB client", zap.Error(err))
		}
	}()

	producer := events.NewPublisher(cfg.KafkaBrokers, logger, cfg.Topic)
	defer producer.Close()

	employeeSvc := controller.NewEmployeeService(repo, producer, logger)
	seed.Run(ctx, employeeSvc, seed.SampleEmployee(time.Now()), logger)
	employeeSvc.Wait()
}

// initDatabase initializes the database connection settings.
func initDatabase(cfg *config.Config) *db.Config {
	return &db.Config{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		Collection:     cfg.MongoCollection,
		ConnectTimeout: cfg.ConnectTimeout,
	}
}
