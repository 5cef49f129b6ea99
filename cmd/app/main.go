package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scamguard/internal/annotator"
	"scamguard/internal/api"
	"scamguard/internal/classifier"
	"scamguard/internal/config"
	"scamguard/internal/logging"
	"scamguard/internal/notifier"
	"scamguard/internal/queue"
	"scamguard/internal/scraper"
	"scamguard/internal/visitlog"
	"scamguard/internal/worker"
)

// app runs the web server and, when brokers are configured, the feed
// scraper and consumer in one process.
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

	cl := classifier.NewHeuristic()
	an := annotator.New()

	server := api.NewServer(cl, an, logger, api.Options{
		PublicDir: cfg.Server.PublicDir,
		Visits:    visitlog.NewAppender(cfg.Server.VisitLog),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if len(cfg.Queue.Brokers) > 0 {
		consumer, err := queue.NewKafkaConsumer(cfg.Queue.Brokers, cfg.Queue.GroupID, cfg.Queue.Topic)
		if err != nil {
			logger.Fatalw("failed to create consumer", "error", err)
		}
		defer consumer.Close()

		w := worker.NewConsumer(consumer, cl, an, notifier.FromConfig(cfg.Notifier, logger), server, logger)
		go func() {
			if err := w.Start(ctx); err != nil {
				logger.Errorw("consumer error", "error", err)
			}
		}()

		if len(cfg.Scraper.Feeds) > 0 {
			publisher, err := queue.NewKafka(cfg.Queue.Brokers, cfg.Queue.Topic)
			if err != nil {
				logger.Fatalw("failed to create queue", "error", err)
			}
			defer publisher.Close()

			go worker.NewScraper(scraper.NewFeed(), publisher, cfg.Scraper, logger).Start(ctx)
		}
	}

	go func() {
		logger.Infof("Scam info web listening on http://localhost:%s/", cfg.Server.Port)
		if err := server.Start(cfg.Server.Addr()); err != nil {
			logger.Fatalw("server error", "error", err)
		}
	}()

	logger.Info("app started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown", "error", err)
	}
}
