package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"chat-orchestrator/internal/domain"
)

// ChatInput is one inbound message bound to a session.
type ChatInput struct {
	SessionID string
	Message   string
}

// ChatUsecase runs the full request pipeline and always produces a textual
// reply for a well-formed request.
type ChatUsecase interface {
	Execute(ctx context.Context, input ChatInput) (string, error)
}

// QueryRewriting is the rewrite step consumed by the pipeline.
type QueryRewriting interface {
	Rewrite(ctx context.Context, query string) string
}

// SearchAggregating is the multi-source search step consumed by the pipeline.
type SearchAggregating interface {
	Search(ctx context.Context, query string) []domain.SearchResult
}

// HistoryStore is the bounded conversation memory consumed by the pipeline.
type HistoryStore interface {
	Recent(ctx context.Context, sessionID string) []HistoryTurn
	Append(sessionID, userMessage, botResponse string)
}

type chatUsecase struct {
	classifier domain.IntentClassifier
	rewriter   QueryRewriting
	aggregator SearchAggregating
	news       domain.NewsProvider
	history    HistoryStore
	prompts    PromptBuilder
	generator  domain.Generator
	logger     *slog.Logger
}

// NewChatUsecase wires the pipeline. The generator is expected to be a
// fallback chain that converts total provider failure into the fixed
// degraded message rather than an error.
func NewChatUsecase(
	classifier domain.IntentClassifier,
	rewriter QueryRewriting,
	aggregator SearchAggregating,
	news domain.NewsProvider,
	history HistoryStore,
	prompts PromptBuilder,
	generator domain.Generator,
	logger *slog.Logger,
) ChatUsecase {
	return &chatUsecase{
		classifier: classifier,
		rewriter:   rewriter,
		aggregator: aggregator,
		news:       news,
		history:    history,
		prompts:    prompts,
		generator:  generator,
		logger:     logger,
	}
}

func (u *chatUsecase) Execute(ctx context.Context, input ChatInput) (string, error) {
	if strings.TrimSpace(input.Message) == "" {
		return "", fmt.Errorf("message is required")
	}
	if strings.TrimSpace(input.SessionID) == "" {
		return "", fmt.Errorf("session_id is required")
	}

	requestID := uuid.NewString()
	intent := u.classifier.Classify(input.Message)
	u.logger.Info("chat_request_routed",
		slog.String("request_id", requestID),
		slog.String("session_id", input.SessionID),
		slog.String("intent", intent.String()))

	switch intent {
	case domain.IntentChitChat:
		return u.handleChitChat(ctx, input)
	case domain.IntentNews:
		return u.handleNews(ctx, input)
	default:
		return u.handleGeneral(ctx, requestID, input)
	}
}

func (u *chatUsecase) handleChitChat(ctx context.Context, input ChatInput) (string, error) {
	systemPrompt, userPrompt := u.prompts.BuildChitChat(input.Message)
	text, err := u.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	response := AutoLink(text)
	u.history.Append(input.SessionID, input.Message, response)
	return response, nil
}

func (u *chatUsecase) handleNews(ctx context.Context, input ChatInput) (string, error) {
	articles := u.news.LiveNews(ctx, input.Message)

	response := NewsUnavailableMessage
	if len(articles) > 0 {
		response = FormatNews(articles)
	}

	u.history.Append(input.SessionID, input.Message, response)
	return response, nil
}

func (u *chatUsecase) handleGeneral(ctx context.Context, requestID string, input ChatInput) (string, error) {
	start := time.Now()
	rewritten := u.rewriter.Rewrite(ctx, input.Message)

	// history read and multi-source search are independent; join both before
	// composing the prompt
	var (
		history []HistoryTurn
		sources []domain.SearchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		history = u.history.Recent(gctx, input.SessionID)
		return nil
	})
	g.Go(func() error {
		sources = u.aggregator.Search(gctx, rewritten)
		return nil
	})
	_ = g.Wait()

	systemPrompt, userPrompt := u.prompts.BuildGeneral(PromptInput{
		UserQuery:      input.Message,
		RewrittenQuery: rewritten,
		History:        history,
		Sources:        sources,
	})

	text, err := u.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	response := AutoLink(text)
	u.history.Append(input.SessionID, input.Message, response)

	u.logger.Info("chat_request_completed",
		slog.String("request_id", requestID),
		slog.Int("source_count", len(sources)),
		slog.Int("history_turns", len(history)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return response, nil
}
