package scraper

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"scamguard/internal/domain"
)

// Feed reads chat messages published as an RSS or Atom feed, such as a
// group-chat export or a community forum.
type Feed struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewFeed() *Feed {
	return &Feed{
		client: &http.Client{Timeout: 15 * time.Second},
		parser: gofeed.NewParser(),
	}
}

func (f *Feed) Scrape(ctx context.Context, feedURL string) ([]domain.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "scamguard/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(feed.Items))
	for _, item := range feed.Items {
		content := itemText(item)
		if content == "" {
			continue
		}

		createdAt := time.Now()
		if item.PublishedParsed != nil {
			createdAt = *item.PublishedParsed
		}

		author := feed.Title
		if item.Author != nil && item.Author.Name != "" {
			author = item.Author.Name
		}

		guid := item.GUID
		if guid == "" {
			guid = item.Link + "|" + content
		}

		messages = append(messages, domain.Message{
			ID:         generateID(guid),
			ExternalID: guid,
			Author:     author,
			Username:   author,
			Content:    content,
			Source:     domain.SourceFeed,
			CreatedAt:  createdAt,
		})
	}

	return messages, nil
}

// itemText prefers the full content, then the description, then the
// title. Markup is reduced to its text.
func itemText(item *gofeed.Item) string {
	for _, s := range []string{item.Content, item.Description, item.Title} {
		if text := stripHTML(s); text != "" {
			return text
		}
	}
	return ""
}

func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func generateID(guid string) string {
	hash := md5.Sum([]byte(guid))
	return fmt.Sprintf("%x", hash)[:12]
}
