package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fathima-sithara/files-service/internal/config"
	"github.com/fathima-sithara/files-service/internal/database"
	"github.com/fathima-sithara/files-service/internal/handlers"
	"github.com/fathima-sithara/files-service/internal/middleware"
	"github.com/fathima-sithara/files-service/internal/queue"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/routes"
	"github.com/fathima-sithara/files-service/internal/services"
	"github.com/fathima-sithara/files-service/internal/sessions"
	"github.com/fathima-sithara/files-service/internal/storage"
	"github.com/fathima-sithara/files-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	db, mc, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatalf("redis connect: %v", err)
	}

	users := repository.NewMongoUserRepo(db, "users")
	files := repository.NewMongoFileRepo(db, "files")
	store := sessions.New(rdb, cfg.SessionTTL)
	blobs := storage.NewDiskStore(cfg.Storage.Root)

	thumbnails := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ThumbnailTopic)
	welcome := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.WelcomeTopic)

	authSvc := services.NewAuthService(users, store, welcome, logger)
	filesSvc := services.NewFilesService(files, blobs, thumbnails, logger)

	limiter := middleware.NewRateLimiter(rdb, "rl:connect", cfg.RateLimit.Limit, cfg.RateWindow)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	routes.Register(app,
		authSvc,
		handlers.NewAppHandler(store, users, files),
		handlers.NewAuthHandler(authSvc),
		handlers.NewFilesHandler(filesSvc),
		limiter.ByIP(),
	)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting files service on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.Shutdown()
	_ = thumbnails.Close()
	_ = welcome.Close()
	_ = mc.Disconnect(ctx)
	_ = rdb.Close()
	logger.Info("shutdown completed")
}
