package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tabifor/stellachat/internal/domain"
)

// ChatRepository implements domain.ChatRepository
type ChatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{pool: db.Pool}
}

// Resolve finds or atomically creates the chat for (userID, personaID).
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict, so
// two near-simultaneous first turns settle into one chat without a retry.
func (r *ChatRepository) Resolve(ctx context.Context, userID uuid.UUID, personaID string) (*domain.Chat, error) {
	query := `
		INSERT INTO chats (id, user_id, persona_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, persona_id)
		DO UPDATE SET persona_id = EXCLUDED.persona_id
		RETURNING id, user_id, persona_id, created_at
	`
	var c domain.Chat
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID, personaID, time.Now()).Scan(
		&c.ID,
		&c.UserID,
		&c.PersonaID,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chat: %w", err)
	}
	return &c, nil
}

// Find returns the chat for (userID, personaID), or nil when none exists
func (r *ChatRepository) Find(ctx context.Context, userID uuid.UUID, personaID string) (*domain.Chat, error) {
	query := `
		SELECT id, user_id, persona_id, created_at
		FROM chats
		WHERE user_id = $1 AND persona_id = $2
	`
	var c domain.Chat
	err := r.pool.QueryRow(ctx, query, userID, personaID).Scan(
		&c.ID,
		&c.UserID,
		&c.PersonaID,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return &c, nil
}
