package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/security"
)

// SessionCache caches validated sessions in front of the durable store.
// Implemented by the Redis session cache; optional.
type SessionCache interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
	Set(ctx context.Context, session *domain.Session) error
	Invalidate(ctx context.Context, token string) error
}

// AuthService handles registration, login, and session validation
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	cache      SessionCache
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service. cache may be nil.
func NewAuthService(
	users domain.UserRepository,
	sessions domain.SessionRepository,
	cache SessionCache,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		cache:      cache,
		sessionTTL: sessionTTL,
	}
}

// CredentialID returns the provider-qualified credential key for an email
// password login.
func CredentialID(email string) string {
	return "email:" + strings.ToLower(email)
}

// Register creates a new user with an email credential and opens a session.
// Returns domain.ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, input domain.UserCreate) (*domain.User, *domain.Session, error) {
	email := strings.ToLower(input.Email)

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	cred := &domain.Credential{
		ID:           CredentialID(email),
		UserID:       user.ID,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user, cred); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies credentials and opens a session. Returns
// domain.ErrUnauthenticated when the email or password is wrong.
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (*domain.Session, error) {
	cred, err := s.users.GetCredential(ctx, CredentialID(input.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	if cred == nil || !security.CheckPassword(cred.PasswordHash, input.Password) {
		return nil, domain.ErrUnauthenticated
	}
	return s.createSession(ctx, cred.UserID)
}

// Logout invalidates the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, session.ID); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate cached session")
		}
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ValidateSession resolves a session token to a live session, extending the
// session's lifetime once it is past the halfway point. Returns
// domain.ErrUnauthenticated for unknown or expired tokens.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, token)
		if err != nil {
			log.Warn().Err(err).Msg("session cache lookup failed")
		} else if cached != nil && !cached.Expired(now) {
			return cached, nil
		}
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	if session.Expired(now) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return nil, domain.ErrUnauthenticated
	}

	// Sliding renewal: extend once less than half the TTL remains.
	if session.ExpiresAt.Sub(now) < s.sessionTTL/2 {
		session.ExpiresAt = now.Add(s.sessionTTL)
		if err := s.sessions.UpdateExpiry(ctx, session.ID, session.ExpiresAt); err != nil {
			log.Warn().Err(err).Msg("failed to renew session")
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			log.Warn().Err(err).Msg("failed to cache session")
		}
	}
	return session, nil
}

// PurgeExpired removes expired sessions from the durable store.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) createSession(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return nil, err
	}
	session := &domain.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}
