package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"maestro_marketplace/internal/chat/api/handlers"
	"maestro_marketplace/internal/chat/app"
	"maestro_marketplace/internal/chat/repository"
	"maestro_marketplace/internal/chat/router"
	"maestro_marketplace/pkg/config"
	"maestro_marketplace/pkg/database"
	"maestro_marketplace/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	pgConnStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgPool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgConnStr,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to profile database after retries", zap.Error(err))
	}
	defer pgPool.Close()

	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to minio after retries", zap.Error(err))
	}

	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    cfg.Rabbit.URL,
		RetryCount:    5,
		RetryInterval: 5 * time.Second,
	})
	if err != nil {
		logger.Log.Fatal("Unable to connect to rabbitmq after retries", zap.Error(err))
	}
	defer rabbitConn.Close()

	rabbitCh, err := database.GetRabbitMQChannelWithRetry(rabbitConn, 5, 2*time.Second)
	if err != nil {
		logger.Log.Fatal("Unable to open rabbitmq channel", zap.Error(err))
	}
	defer rabbitCh.Close()

	if _, err := rabbitCh.QueueDeclare(cfg.Rabbit.Queue, true, false, false, false, nil); err != nil {
		logger.Log.Fatal("Unable to declare notify queue", zap.Error(err))
	}

	msgRepo := repository.NewMongoMessageRepository(mongo.Database)
	profileRepo := repository.NewPgProfileRepository(pgPool)
	attachRepo := repository.NewMinioAttachmentRepository(minioClient)
	pubSub := repository.NewRedisPubSub(redisClient)
	rabbitRepo := database.NewRabbitRepository(rabbitCh)

	messageUC := app.NewMessageUseCase(msgRepo, profileRepo, attachRepo, pubSub, rabbitRepo, cfg.Rabbit.Queue)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, app.NewChatWebsocketHandler(messageUC, pubSub), &handlers.MessageHandler{MessageUC: messageUC})

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
