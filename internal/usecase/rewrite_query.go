package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"chat-orchestrator/internal/domain"
)

var rephrasedMarker = regexp.MustCompile(`(?i)Rephrased:(.*)`)

// QueryRewriter asks a generation provider for a search-optimized rephrasing
// of the raw user query. Failure is a silent degrade: search proceeds on the
// original query.
type QueryRewriter struct {
	generator domain.Generator
	logger    *slog.Logger
}

func NewQueryRewriter(generator domain.Generator, logger *slog.Logger) *QueryRewriter {
	return &QueryRewriter{
		generator: generator,
		logger:    logger,
	}
}

func (r *QueryRewriter) Rewrite(ctx context.Context, query string) string {
	prompt := fmt.Sprintf("You are a search assistant. Rephrase the following user query to make it clear and optimized for web or AI search.\nInput: %s\nRephrased:", query)

	text, err := r.generator.Generate(ctx, "", prompt)
	if err != nil {
		r.logger.Warn("query_rewrite_failed",
			slog.String("provider", r.generator.Name()),
			slog.String("error", err.Error()))
		return query
	}

	if m := rephrasedMarker.FindStringSubmatch(text); m != nil {
		if rewritten := strings.TrimSpace(m[1]); rewritten != "" {
			return rewritten
		}
	}
	return strings.TrimSpace(text)
}
