package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Chat is the durable, persona-scoped conversation thread for one user.
// At most one chat exists per (user, persona) pair.
type Chat struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PersonaID string    `json:"persona_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn in a chat. Messages are append-only; ordered by
// CreatedAt they reconstruct the exact context replayed to the model.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	ChatID    uuid.UUID   `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatRepository defines the interface for chat storage
type ChatRepository interface {
	// Resolve finds the chat for (userID, personaID) or atomically creates
	// it. Safe under concurrent invocation for the same pair: backed by a
	// unique constraint and an upsert, never lookup-then-insert.
	Resolve(ctx context.Context, userID uuid.UUID, personaID string) (*Chat, error)
	// Find returns the chat for (userID, personaID), or nil when none exists.
	Find(ctx context.Context, userID uuid.UUID, personaID string) (*Chat, error)
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListByChat returns all messages for a chat, oldest first.
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]Message, error)
}
