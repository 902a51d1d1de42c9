package domain

import (
	"context"
	"time"
)

// NewsArticle is a single headline from the live-news provider. Articles are
// built per request and never persisted; only the formatted text derived from
// them survives as part of a ConversationTurn.
type NewsArticle struct {
	Title       string
	Source      string
	URL         string
	PublishedAt time.Time
}

// NewsProvider fetches recent headlines for a query. Same contract as
// SearchConnector: provider errors degrade to an empty slice.
type NewsProvider interface {
	LiveNews(ctx context.Context, query string) []NewsArticle
}
