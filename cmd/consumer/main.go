package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scamguard/internal/annotator"
	"scamguard/internal/classifier"
	"scamguard/internal/config"
	"scamguard/internal/logging"
	"scamguard/internal/notifier"
	"scamguard/internal/queue"
	"scamguard/internal/worker"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	consumer, err := queue.NewKafkaConsumer(cfg.Queue.Brokers, cfg.Queue.GroupID, cfg.Queue.Topic)
	if err != nil {
		logger.Fatalw("failed to create consumer", "error", err)
	}
	defer consumer.Close()

	nt := notifier.FromConfig(cfg.Notifier, logger)

	w := worker.NewConsumer(consumer, classifier.NewHeuristic(), annotator.New(), nt, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := w.Start(ctx); err != nil {
			logger.Errorw("consumer error", "error", err)
		}
	}()

	logger.Info("consumer started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
}
