package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"maestro_marketplace/internal/matching/api/handlers"
	"maestro_marketplace/internal/matching/app"
	"maestro_marketplace/internal/matching/repository"
	"maestro_marketplace/internal/matching/router"
	"maestro_marketplace/pkg/config"
	"maestro_marketplace/pkg/database"
	"maestro_marketplace/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MatchingService, config.EnvConfig.MatchingServiceLogPath)
	cfg := config.LoadConfig[config.Matching](config.EnvConfig.MatchingService, config.EnvConfig.MatchingServiceYAMLPath)

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

	specialistRepo := repository.NewSpecialistRepo(db)
	if err := specialistRepo.AutoMigrate(); err != nil {
		log.Fatalf("specialist migration failed: %v", err)
	}
	taskRepo := repository.NewTaskRepo(db)
	if err := taskRepo.AutoMigrate(); err != nil {
		log.Fatalf("task migration failed: %v", err)
	}

	kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		log.Fatalf("kafka writer init failed: %v", err)
	}
	defer kafkaWriter.Close()

	events := repository.NewKafkaEventPublisher(kafkaWriter)
	analyzer := app.NewAnalyzer(cfg.AIAnalyze.URL, time.Duration(cfg.AIAnalyze.Timeout)*time.Second)

	searchUC := app.NewSearchUseCase(specialistRepo, taskRepo, analyzer, events)
	taskUC := app.NewTaskUseCase(taskRepo, specialistRepo, analyzer, events)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.MatchingServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, handlers.NewMatchingHandler(searchUC, taskUC))

	port := ":" + cfg.Port
	log.Printf("Matching Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
