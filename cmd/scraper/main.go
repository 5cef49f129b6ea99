package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scamguard/internal/config"
	"scamguard/internal/logging"
	"scamguard/internal/queue"
	"scamguard/internal/scraper"
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

	if len(cfg.Scraper.Feeds) == 0 {
		logger.Fatal("no feeds configured (scraper.feeds)")
	}

	publisher, err := queue.NewKafka(cfg.Queue.Brokers, cfg.Queue.Topic)
	if err != nil {
		logger.Fatalw("failed to create queue", "error", err)
	}
	defer publisher.Close()

	w := worker.NewScraper(scraper.NewFeed(), publisher, cfg.Scraper, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)

	logger.Infow("scraper started", "feeds", len(cfg.Scraper.Feeds), "interval", cfg.Scraper.Interval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
}
