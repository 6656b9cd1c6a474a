package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tabifor/stellachat/internal/domain"
)

const (
	sessionCachePrefix = "session:"
	sessionCacheTTL    = 5 * time.Minute
)

// SessionCache is a read-through cache in front of the durable session
// store. Sessions are validated on every request; the short TTL bounds how
// long a revoked session can still authenticate from cache.
type SessionCache struct {
	client *Client
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *Client) *SessionCache {
	return &SessionCache{client: client}
}

// Get retrieves a cached session, or nil on a miss
func (c *SessionCache) Get(ctx context.Context, token string) (*domain.Session, error) {
	key := sessionCachePrefix + token

	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Set caches a validated session
func (c *SessionCache) Set(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.client.rdb.Set(ctx, sessionCachePrefix+session.ID, data, sessionCacheTTL).Err()
}

// Invalidate removes a session from the cache
func (c *SessionCache) Invalidate(ctx context.Context, token string) error {
	return c.client.rdb.Del(ctx, sessionCachePrefix+token).Err()
}
