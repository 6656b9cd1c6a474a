package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/tabifor/stellachat/internal/api/middleware"
	"github.com/tabifor/stellachat/internal/api/response"
	"github.com/tabifor/stellachat/internal/domain"
	"github.com/tabifor/stellachat/internal/service"
)

var validate = validator.New()

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "email and password (min 6 chars) are required")
		return
	}

	user, session, err := h.authService.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.Conflict(w, "email already in use")
			return
		}
		log.Error().Err(err).Msg("registration failed")
		response.InternalError(w, "an internal error occurred")
		return
	}

	h.setSessionCookie(w, session)
	response.JSON(w, http.StatusCreated, map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, "email and password are required")
		return
	}

	session, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			response.Unauthorized(w, "incorrect email or password")
			return
		}
		log.Error().Err(err).Msg("login failed")
		response.InternalError(w, "an internal error occurred")
		return
	}

	h.setSessionCookie(w, session)
	response.NoContent(w, http.StatusOK)
}

// Logout invalidates the current session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			response.Unauthorized(w, "unauthorized")
			return
		}
		log.Error().Err(err).Msg("logout failed")
		response.InternalError(w, "an internal error occurred")
		return
	}

	h.clearSessionCookie(w)
	response.NoContent(w, http.StatusOK)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
