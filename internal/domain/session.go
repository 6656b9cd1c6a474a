package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is a durable login session. The ID is the opaque token delivered
// to the browser in the session cookie; sessions survive process restarts.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// UpdateExpiry extends a session's lifetime (sliding renewal).
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes all sessions past their expiry and returns
	// how many were deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
