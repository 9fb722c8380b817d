package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fathima-sithara/files-service/internal/config"
	"github.com/fathima-sithara/files-service/internal/database"
	"github.com/fathima-sithara/files-service/internal/queue"
	"github.com/fathima-sithara/files-service/internal/repository"
	"github.com/fathima-sithara/files-service/internal/storage"
	"github.com/fathima-sithara/files-service/internal/utils"
	"github.com/fathima-sithara/files-service/internal/worker"
)

// The worker process drains the two job queues: thumbnail generation and
// welcome greetings. It shares no in-process state with the API server.
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

	users := repository.NewMongoUserRepo(db, "users")
	files := repository.NewMongoFileRepo(db, "files")
	blobs := storage.NewDiskStore(cfg.Storage.Root)

	thumbnailer := worker.NewThumbnailer(files, blobs, logger)
	welcomer := worker.NewWelcomer(users, logger)

	thumbConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.ThumbnailTopic, cfg.Kafka.ThumbnailGroup, logger)
	welcomeConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.WelcomeTopic, cfg.Kafka.WelcomeGroup, logger)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	run := func(name string, c queue.Consumer, h queue.HandlerFunc) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Infof("%s consumer started", name)
			if err := c.Run(ctx, h); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("%s consumer stopped: %v", name, err)
			}
		}()
	}
	run("thumbnail", thumbConsumer, thumbnailer.Handle)
	run("welcome", welcomeConsumer, welcomer.Handle)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")

	cancel()
	wg.Wait()
	_ = thumbConsumer.Close()
	_ = welcomeConsumer.Close()
	_ = mc.Disconnect(context.Background())
	logger.Info("shutdown completed")
}
