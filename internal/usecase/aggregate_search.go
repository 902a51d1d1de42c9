package usecase

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"chat-orchestrator/internal/domain"
)

const (
	searchCacheSize = 128
	searchCacheTTL  = 60 * time.Second
)

// SearchAggregator fans out one query to every configured connector, merges
// the results in connector priority order and deduplicates by URL.
type SearchAggregator struct {
	// connectors in priority order; earlier connectors win dedup ties.
	connectors []domain.SearchConnector
	cache      *lru.LRU[string, []domain.SearchResult]
	logger     *slog.Logger
}

func NewSearchAggregator(connectors []domain.SearchConnector, logger *slog.Logger) *SearchAggregator {
	return &SearchAggregator{
		connectors: connectors,
		cache:      lru.NewLRU[string, []domain.SearchResult](searchCacheSize, nil, searchCacheTTL),
		logger:     logger,
	}
}

// Search runs all connectors concurrently and joins their results. Connectors
// never fail upward, so the aggregation as a whole cannot fail; two empty
// connectors produce an empty (non-nil error-free) result.
func (a *SearchAggregator) Search(ctx context.Context, query string) []domain.SearchResult {
	if cached, ok := a.cache.Get(query); ok {
		a.logger.Debug("search_cache_hit", slog.String("query", query))
		return cached
	}

	start := time.Now()
	perConnector := make([][]domain.SearchResult, len(a.connectors))

	g, gctx := errgroup.WithContext(ctx)
	for i, connector := range a.connectors {
		g.Go(func() error {
			perConnector[i] = connector.Search(gctx, query)
			return nil
		})
	}
	// connectors return nil errors only; Wait is a pure join
	_ = g.Wait()

	merged := dedupeByURL(perConnector)

	a.logger.Info("search_aggregated",
		slog.String("query", query),
		slog.Int("result_count", len(merged)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	a.cache.Add(query, merged)
	return merged
}

// dedupeByURL concatenates result lists in priority order and keeps the first
// occurrence of each URL.
func dedupeByURL(lists [][]domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]bool)
	var merged []domain.SearchResult
	for _, list := range lists {
		for _, r := range list {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			merged = append(merged, r)
		}
	}
	return merged
}
