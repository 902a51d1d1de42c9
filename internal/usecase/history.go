package usecase

import (
	"context"
	"log/slog"
	"time"

	"chat-orchestrator/internal/domain"
)

const appendTimeout = 5 * time.Second

// HistoryTurn is one (user, bot) exchange as consumed by the prompt builder.
type HistoryTurn struct {
	User string
	Bot  string
}

// HistoryService adapts the conversation store for the pipeline: reads
// degrade to empty history, writes are best-effort and never gate the
// response.
type HistoryService struct {
	repo   domain.ConversationRepository
	window int
	logger *slog.Logger
}

func NewHistoryService(repo domain.ConversationRepository, window int, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		window: window,
		logger: logger,
	}
}

// Recent returns up to the configured window of turns in chronological order
// (oldest first). A store error degrades to an empty history.
func (s *HistoryService) Recent(ctx context.Context, sessionID string) []HistoryTurn {
	turns, err := s.repo.Recent(ctx, sessionID, s.window)
	if err != nil {
		s.logger.Warn("history_fetch_failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil
	}

	// store returns newest first; consumers want oldest first
	history := make([]HistoryTurn, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		history = append(history, HistoryTurn{
			User: turns[i].UserMessage,
			Bot:  turns[i].BotResponse,
		})
	}
	return history
}

// Append stores a completed exchange. It runs on a detached bounded context
// so a client disconnect cannot lose the turn, and failure is logged only.
func (s *HistoryService) Append(sessionID, userMessage, botResponse string) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	err := s.repo.Insert(ctx, domain.ConversationTurn{
		SessionID:   sessionID,
		UserMessage: userMessage,
		BotResponse: botResponse,
	})
	if err != nil {
		s.logger.Warn("history_append_failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
	}
}
