package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one user message paired with the bot's reply. Turns are
// immutable once written; retention is handled outside the request path.
type ConversationTurn struct {
	ID          uuid.UUID
	SessionID   string
	UserMessage string
	BotResponse string
	CreatedAt   time.Time
}

// SessionStats summarizes the stored history of one session.
type SessionStats struct {
	SessionID string
	TurnCount int
	LastTurn  time.Time
}

// ConversationRepository persists and queries conversation turns.
type ConversationRepository interface {
	Insert(ctx context.Context, turn ConversationTurn) error
	// Recent returns up to limit turns for the session, newest first.
	Recent(ctx context.Context, sessionID string, limit int) ([]ConversationTurn, error)
	Stats(ctx context.Context) ([]SessionStats, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
