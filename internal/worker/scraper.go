package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"scamguard/internal/config"
	"scamguard/internal/queue"
	"scamguard/internal/scraper"
)

// Scraper polls feeds and queues messages not seen earlier in this process.
type Scraper struct {
	scraper   scraper.Scraper
	publisher queue.Publisher
	feeds     []string
	interval  time.Duration
	seen      map[string]bool
	log       *zap.SugaredLogger
}

func NewScraper(s scraper.Scraper, p queue.Publisher, cfg config.ScraperConfig, log *zap.SugaredLogger) *Scraper {
	return &Scraper{
		scraper:   s,
		publisher: p,
		feeds:     cfg.Feeds,
		interval:  cfg.Interval,
		seen:      make(map[string]bool),
		log:       log,
	}
}

func (w *Scraper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scrapeAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scrapeAll(ctx)
		}
	}
}

func (w *Scraper) scrapeAll(ctx context.Context) {
	for _, feed := range w.feeds {
		messages, err := w.scraper.Scrape(ctx, feed)
		if err != nil {
			w.log.Errorw("scrape failed", "feed", feed, "error", err)
			continue
		}

		newCount := 0
		dupCount := 0

		for _, msg := range messages {
			if w.seen[msg.ID] {
				dupCount++
				continue
			}

			if err := w.publisher.Publish(ctx, msg); err != nil {
				w.log.Errorw("publish failed", "id", msg.ID, "error", err)
				continue
			}
			w.seen[msg.ID] = true
			newCount++

			w.log.Debugw("queued", "id", msg.ID, "author", msg.Username, "content", truncate(msg.Content, 60))
		}

		w.log.Infow("scraped", "feed", feed, "new", newCount, "duplicates", dupCount, "seen_total", len(w.seen))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
