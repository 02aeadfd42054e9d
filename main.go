package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/logger"
	"inventory/internal/repositories"
	"inventory/internal/server"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		// logger is not available yet
		panic(err)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	// --- Initialize Repository ---
	productRepo, closeRepo, err := openRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize product store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Error("Failed to close product store", zap.Error(err))
		}
	}()

	// --- Initialize RabbitMQ Client ---
	// Product events are optional; without a URL nothing is published.
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			log.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
		log.Info("Publishing product events", zap.String("queue", cfg.RabbitMQ.Queue))
	}

	// --- Initialize Services and Handlers ---
	productService := services.NewProductService(productRepo, publisher, log)
	productHandler := handlers.NewProductHandler(productService)

	app := server.NewApp(cfg.Server, log, productHandler)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting server", zap.String("addr", cfg.Server.Addr), zap.String("env", cfg.Server.Env))
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}

	log.Info("Server gracefully stopped")
}

// openRepository builds the product store selected by DATABASE_DRIVER.
// The returned close function releases the store's connection.
func openRepository(cfg *config.Config, log *zap.Logger) (repositories.ProductRepository, func() error, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory product store; data is lost on exit")
		return repositories.NewMemoryProductRepository(), func() error { return nil }, nil
	}

	logLevel := gormlogger.Warn
	if cfg.Server.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := database.Open(cfg.Database, logLevel)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	repo := repositories.NewGORMProductRepository(db)
	return repo, repo.Close, nil
}
