package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maestro_marketplace/internal/notify/api/handlers"
	"maestro_marketplace/internal/notify/app"
	"maestro_marketplace/internal/notify/repository"
	"maestro_marketplace/internal/notify/router"
	"maestro_marketplace/pkg/config"
	"maestro_marketplace/pkg/database"
	"maestro_marketplace/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.NotifyWorker, config.EnvConfig.NotifyWorkerLogPath)
	cfg := config.LoadConfig[config.NotifyWorker](config.EnvConfig.NotifyWorker, config.EnvConfig.NotifyWorkerYAMLPath)

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.PostgreSQL.Host, cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Database, cfg.PostgreSQL.Port)
	db, err := database.NewGormConnection(database.Connection{
		ConnectStr:    dsn,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", dsn)),
			zap.Error(err),
		)
	}

	notifyRepo := repository.NewNotificationRepo(db)
	if err := notifyRepo.AutoMigrate(); err != nil {
		log.Fatalf("notification migration failed: %v", err)
	}

	conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    cfg.Rabbit.URL,
		RetryCount:    5,
		RetryInterval: 5 * time.Second,
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to rabbitmq after retries", zap.Error(err))
	}
	defer conn.Close()

	rabbitCh, err := database.GetRabbitMQChannelWithRetry(conn, 5, 2*time.Second)
	if err != nil {
		logger.Log.Fatal("Unable to open rabbitmq channel", zap.Error(err))
	}
	defer rabbitCh.Close()

	if _, err := rabbitCh.QueueDeclare(cfg.Rabbit.Queue, true, false, false, false, nil); err != nil {
		logger.Log.Fatal("Unable to declare notify queue", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	// the fetch/ack surface runs beside the consumer: clients coming back
	// online pull their backlog from the same store the queue drains into
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.NotifyWorkerLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, &handlers.NotificationHandler{NotifyRepo: notifyRepo})

	go func() {
		port := ":" + cfg.Port
		log.Printf("Notify Worker listening on %s", port)
		if err := r.Listen(port); err != nil {
			log.Fatalf("Failed to start Fiber: %v", err)
		}
	}()

	consumer := app.NewConsumer(rabbitCh, notifyRepo, cfg.Rabbit.Queue)
	consumer.StartConsumer(ctx)
}
