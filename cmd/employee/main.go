package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gartstein/employees/internal/employee/config"
	"github.com/gartstein/employees/internal/employee/controller"
	"github.com/gartstein/employees/internal/employee/db"
	"github.com/gartstein/employees/internal/employee/events"
	"github.com/gartstein/employees/internal/employee/handlers"
	applog "github.com/gartstein/employees/internal/pkg/logger"
	"go.uber.org/zap"
)

const storeCheckInterval = 10 * time.Second

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

	repo, err := db.NewRepository(context.Background(), initDatabase(cfg))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Error("Failed to close MongoDB client", zap.Error(err))
		}
	}()
	logger.Info("Connected to MongoDB")

	producer := events.NewPublisher(cfg.KafkaBrokers, logger, cfg.Topic)
	defer producer.Close()

	employeeSvc := controller.NewEmployeeService(repo, producer, logger)
	employeeHandler := handlers.NewEmployeeHandler(employeeSvc, logger)

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	server.RegisterHTTPHandler(employeeHandler, cfg.JWTSecret)
	server.SetServing(true)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	go server.MonitorStore(monitorCtx, repo, storeCheckInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	waitForShutdown(server, errCh, logger)
	stopMonitor()
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

// waitForShutdown blocks until an interrupt or SIGTERM is received, or a
// server fails, then shuts down servers.
func waitForShutdown(server *handlers.Server, errCh <-chan error, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped with error", zap.Error(err))
		}
	}

	server.Stop()
	logger.Info("Servers stopped properly")
}
