package scraper

import (
	"context"

	"scamguard/internal/domain"
)

type Scraper interface {
	Scrape(ctx context.Context, source string) ([]domain.Message, error)
}
