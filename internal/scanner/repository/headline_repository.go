package repository

import (
	"context"
	"fmt"
	"time"

	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// rssHeadlineRepository reads headlines from the configured RSS feeds.
type rssHeadlineRepository struct {
	cfg    *config.Config
	parser *gofeed.Parser
	logger *logger.Logger
}

// NewRSSHeadlineRepository creates a HeadlineRepository over cfg.News.FeedURLs.
func NewRSSHeadlineRepository(cfg *config.Config, log *logger.Logger) HeadlineRepository {
	return &rssHeadlineRepository{
		cfg:    cfg,
		parser: gofeed.NewParser(),
		logger: log,
	}
}

// Latest collects up to max_items headlines across feeds in configured order. A failing feed is
// skipped; an error is returned only when every feed fails.
func (r *rssHeadlineRepository) Latest(ctx context.Context) ([]dto.Headline, error) {
	if len(r.cfg.News.FeedURLs) == 0 || r.cfg.News.MaxItems == 0 {
		return nil, nil
	}

	var (
		headlines []dto.Headline
		failures  int
		lastErr   error
	)
	for _, url := range r.cfg.News.FeedURLs {
		if len(headlines) >= r.cfg.News.MaxItems {
			break
		}

		items, err := r.fetch(ctx, url)
		if err != nil {
			failures++
			lastErr = err
			r.logger.WarnContext(ctx, "Failed to fetch RSS feed", logger.StringField("url", url), logger.ErrorField(err))
			continue
		}
		for _, h := range items {
			if len(headlines) >= r.cfg.News.MaxItems {
				break
			}
			headlines = append(headlines, h)
		}
	}

	if failures == len(r.cfg.News.FeedURLs) {
		return nil, fmt.Errorf("all %d feeds failed: %w", failures, lastErr)
	}
	return headlines, nil
}

func (r *rssHeadlineRepository) fetch(ctx context.Context, url string) ([]dto.Headline, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.cfg.News.Timeout)
	defer cancel()

	feed, err := r.parser.ParseURLWithContext(url, ctxTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	headlines := make([]dto.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}
		h := dto.Headline{
			Title:  item.Title,
			Link:   item.Link,
			Source: feed.Title,
		}
		if item.PublishedParsed != nil {
			h.Published = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
