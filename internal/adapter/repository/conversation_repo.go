package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chat-orchestrator/internal/domain"
)

type conversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository creates a ConversationRepository over Postgres.
func NewConversationRepository(pool *pgxpool.Pool) domain.ConversationRepository {
	return &conversationRepository{pool: pool}
}

func (r *conversationRepository) Insert(ctx context.Context, turn domain.ConversationTurn) error {
	id := turn.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO conversations (id, session_id, user_message, bot_response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, id, turn.SessionID, turn.UserMessage, turn.BotResponse, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert conversation turn: %w", err)
	}
	return nil
}

func (r *conversationRepository) Recent(ctx context.Context, sessionID string, limit int) ([]domain.ConversationTurn, error) {
	query := `
		SELECT id, session_id, user_message, bot_response, created_at
		FROM conversations
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.ConversationTurn
	for rows.Next() {
		var t domain.ConversationTurn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.UserMessage, &t.BotResponse, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return turns, nil
}

func (r *conversationRepository) Stats(ctx context.Context) ([]domain.SessionStats, error) {
	query := `
		SELECT session_id, COUNT(*), MAX(created_at)
		FROM conversations
		GROUP BY session_id
		ORDER BY MAX(created_at) DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query session stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.SessionStats
	for rows.Next() {
		var s domain.SessionStats
		if err := rows.Scan(&s.SessionID, &s.TurnCount, &s.LastTurn); err != nil {
			return nil, fmt.Errorf("failed to scan session stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return stats, nil
}

func (r *conversationRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM conversations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete conversation turns: %w", err)
	}
	return tag.RowsAffected(), nil
}
