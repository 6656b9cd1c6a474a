package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tabifor/stellachat/internal/api/response"
	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/service"
)

// SessionCookieName is the fixed, process-wide name of the session cookie.
const SessionCookieName = "auth_session"

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware resolves the session cookie to a user identity
type AuthMiddleware struct {
	auth *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate validates the session cookie and puts the user ID on the
// request context. Requests without a valid session are rejected with 401
// before any side effect.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			response.Unauthorized(w, "unauthorized")
			return
		}

		session, err := m.auth.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				log.Error().Err(err).Msg("session validation failed")
			}
			response.Unauthorized(w, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, session.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the authenticated user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
