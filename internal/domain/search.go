package domain

import "context"

// SearchResult is one normalized hit from a retrieval backend. URL is the
// identity key: one aggregation never yields two results with the same URL.
type SearchResult struct {
	Title       string
	Description string
	URL         string
}

// SearchConnector adapts one external retrieval provider. Implementations
// absorb all of their own failure modes and return an empty slice instead of
// an error, so callers never need per-source error handling.
type SearchConnector interface {
	Search(ctx context.Context, query string) []SearchResult
	Name() string
}
