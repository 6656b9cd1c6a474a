package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/security"
)

const testSessionTTL = 720 * time.Hour

func TestAuthService_Register(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(users, sessions, nil, testSessionTTL)

	var createdCred *domain.Credential
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User"), mock.AnythingOfType("*domain.Credential")).
		Run(func(args mock.Arguments) {
			createdCred = args.Get(2).(*domain.Credential)
		}).
		Return(nil)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	user, session, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "email:ada@example.com", createdCred.ID)
	assert.True(t, security.CheckPassword(createdCred.PasswordHash, "secret123"))

	assert.Equal(t, user.ID, session.UserID)
	assert.NotEmpty(t, session.ID)
	assert.WithinDuration(t, time.Now().Add(testSessionTTL), session.ExpiresAt, time.Minute)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(users, sessions, nil, testSessionTTL)

	users.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

	_, _, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(users, sessions, nil, testSessionTTL)

	userID := uuid.New()
	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)

	users.On("GetCredential", mock.Anything, "email:ada@example.com").Return(&domain.Credential{
		ID:           "email:ada@example.com",
		UserID:       userID,
		PasswordHash: hash,
	}, nil)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	session, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(users, sessions, nil, testSessionTTL)

	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	users.On("GetCredential", mock.Anything, "email:ada@example.com").Return(&domain.Credential{
		UserID:       uuid.New(),
		PasswordHash: hash,
	}, nil)

	_, err = svc.Login(context.Background(), domain.UserLogin{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(users, sessions, nil, testSessionTTL)

	users.On("GetCredential", mock.Anything, "email:nobody@example.com").Return(nil, nil)

	_, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ValidateSession(t *testing.T) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(users, sessions, nil, testSessionTTL)

	stored := &domain.Session{
		ID:        "tok",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(testSessionTTL),
	}
	sessions.On("Get", mock.Anything, "tok").Return(stored, nil)

	got, err := svc.ValidateSession(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, got.UserID)

	// A fresh session is not renewed.
	sessions.AssertNotCalled(t, "UpdateExpiry", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ValidateSession_EmptyToken(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockSessionRepository), nil, testSessionTTL)

	_, err := svc.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ValidateSession_Unknown(t *testing.T) {
	sessions := new(MockSessionRepository)
	svc := NewAuthService(new(MockUserRepository), sessions, nil, testSessionTTL)

	sessions.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.ValidateSession(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	sessions := new(MockSessionRepository)
	svc := NewAuthService(new(MockUserRepository), sessions, nil, testSessionTTL)

	sessions.On("Get", mock.Anything, "stale").Return(&domain.Session{
		ID:        "stale",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	sessions.On("Delete", mock.Anything, "stale").Return(nil)

	_, err := svc.ValidateSession(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	sessions.AssertCalled(t, "Delete", mock.Anything, "stale")
}

func TestAuthService_ValidateSession_SlidingRenewal(t *testing.T) {
	sessions := new(MockSessionRepository)
	svc := NewAuthService(new(MockUserRepository), sessions, nil, testSessionTTL)

	// Under half the TTL left, so validation should push the expiry out.
	sessions.On("Get", mock.Anything, "tok").Return(&domain.Session{
		ID:        "tok",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(testSessionTTL / 4),
	}, nil)
	sessions.On("UpdateExpiry", mock.Anything, "tok", mock.AnythingOfType("time.Time")).Return(nil)

	got, err := svc.ValidateSession(context.Background(), "tok")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(testSessionTTL), got.ExpiresAt, time.Minute)
	sessions.AssertCalled(t, "UpdateExpiry", mock.Anything, "tok", mock.AnythingOfType("time.Time"))
}

func TestAuthService_ValidateSession_CacheHitSkipsStore(t *testing.T) {
	sessions := new(MockSessionRepository)
	cache := new(MockSessionCache)
	svc := NewAuthService(new(MockUserRepository), sessions, cache, testSessionTTL)

	cache.On("Get", mock.Anything, "tok").Return(&domain.Session{
		ID:        "tok",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(testSessionTTL),
	}, nil)

	_, err := svc.ValidateSession(context.Background(), "tok")
	require.NoError(t, err)
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAuthService_ValidateSession_CacheMissFallsThrough(t *testing.T) {
	sessions := new(MockSessionRepository)
	cache := new(MockSessionCache)
	svc := NewAuthService(new(MockUserRepository), sessions, cache, testSessionTTL)

	stored := &domain.Session{
		ID:        "tok",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(testSessionTTL),
	}
	cache.On("Get", mock.Anything, "tok").Return(nil, nil)
	sessions.On("Get", mock.Anything, "tok").Return(stored, nil)
	cache.On("Set", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	got, err := svc.ValidateSession(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, got.UserID)
	cache.AssertCalled(t, "Set", mock.Anything, mock.AnythingOfType("*domain.Session"))
}

func TestAuthService_Logout(t *testing.T) {
	sessions := new(MockSessionRepository)
	cache := new(MockSessionCache)
	svc := NewAuthService(new(MockUserRepository), sessions, cache, testSessionTTL)

	cache.On("Get", mock.Anything, "tok").Return(nil, nil)
	sessions.On("Get", mock.Anything, "tok").Return(&domain.Session{
		ID:        "tok",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(testSessionTTL),
	}, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything, "tok").Return(nil)
	sessions.On("Delete", mock.Anything, "tok").Return(nil)

	require.NoError(t, svc.Logout(context.Background(), "tok"))
	sessions.AssertCalled(t, "Delete", mock.Anything, "tok")
	cache.AssertCalled(t, "Invalidate", mock.Anything, "tok")
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	sessions := new(MockSessionRepository)
	svc := NewAuthService(new(MockUserRepository), sessions, nil, testSessionTTL)

	sessions.On("Get", mock.Anything, "bad").Return(nil, nil)

	err := svc.Logout(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
