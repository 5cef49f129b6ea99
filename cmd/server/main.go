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
	"scamguard/internal/visitlog"
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

	server := api.NewServer(classifier.NewHeuristic(), annotator.New(), logger, api.Options{
		PublicDir: cfg.Server.PublicDir,
		Visits:    visitlog.NewAppender(cfg.Server.VisitLog),
	})

	go func() {
		logger.Infof("Scam info web listening on http://localhost:%s/", cfg.Server.Port)
		if err := server.Start(cfg.Server.Addr()); err != nil {
			logger.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorw("shutdown", "error", err)
	}
}
