package fetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"suggestable/internal/domain"
)

type loggingFetcher struct {
	next   Fetcher
	logger *log.Logger
}

// WithLogging wraps next so every request and failure is logged.
// Errors are passed through unchanged.
func WithLogging(next Fetcher, logger *log.Logger) Fetcher {
	return &loggingFetcher{next: next, logger: logger}
}

func (l *loggingFetcher) Fetch(ctx context.Context, endpoint, term string) ([]domain.Suggestion, error) {
	start := time.Now()
	items, err := l.next.Fetch(ctx, endpoint, term)
	if err != nil {
		l.logger.Warn("suggestion fetch failed", "url", endpoint, "term", term, "err", err)
		return nil, err
	}
	l.logger.Debug("suggestions fetched", "url", endpoint, "term", term, "count", len(items), "took", time.Since(start))
	return items, nil
}
