package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tabifor/stellachat/internal/api/handler"
	custommw "github.com/tabifor/stellachat/internal/api/middleware"
	"github.com/tabifor/stellachat/internal/config"
	"github.com/tabifor/stellachat/internal/llm/nvidia"
	"github.com/tabifor/stellachat/internal/repository/postgres"
	"github.com/tabifor/stellachat/internal/repository/redis"
	"github.com/tabifor/stellachat/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware. No Timeout middleware here: completion streams run
	// for minutes and must not be cut off by a request deadline.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	sessionCache := redis.NewSessionCache(redisClient)
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Completion provider: one fixed OpenAI-compatible endpoint shared by
	// all personas.
	provider := nvidia.NewProvider(cfg.LLM)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionRepo, sessionCache, cfg.Auth.SessionTTL)
	chatService := service.NewChatService(chatRepo, messageRepo, provider)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Auth.SecureCookie)
	chatHandler := handler.NewChatHandler(chatService)

	authMiddleware := custommw.NewAuthMiddleware(authService)
	rateLimitMiddleware := custommw.NewRateLimitMiddleware(rateLimiter)

	// Health
	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(db))

	// Auth routes (public; logout validates its own cookie)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// Chat routes (session required)
	r.Route("/chat", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/personas", handler.ListPersonas)
		r.Get("/history/{persona}", chatHandler.History)

		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)
			r.Post("/{persona}", chatHandler.Stream)
		})
	})

	return r
}
