package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/handler"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Quiz    *handler.QuizHandler
	Attempt *handler.AttemptHandler
	Summary *handler.SummaryHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Generation endpoints call paid model providers, so they get a
	// tighter per-IP budget.
	generateLimiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Quiz Group (JWT) ───────────────────────────────────────────
	quizzes := router.Group("/api/v1/quizzes")
	quizzes.Use(middleware.RequireJWT(authService))
	{
		quizzes.POST("", generateLimiter.Middleware(), handlers.Quiz.Create)
		quizzes.GET("", handlers.Quiz.List)
		quizzes.GET("/:id", handlers.Quiz.Get)
		quizzes.GET("/:id/attempt", handlers.Quiz.GetForAttempt)
		quizzes.GET("/:id/attempts", handlers.Attempt.ListByQuiz)
		quizzes.DELETE("/:id", handlers.Quiz.Delete)
	}

	// ─── 3. Attempt Group (JWT) ────────────────────────────────────────
	attempts := router.Group("/api/v1/attempts")
	attempts.Use(middleware.RequireJWT(authService))
	{
		attempts.POST("", handlers.Attempt.Submit)
		attempts.GET("/:id", handlers.Attempt.Get)
	}

	// ─── 4. Summary Group (JWT) ────────────────────────────────────────
	summaries := router.Group("/api/v1/summaries")
	summaries.Use(middleware.RequireJWT(authService))
	{
		summaries.POST("", generateLimiter.Middleware(), handlers.Summary.Create)
		summaries.GET("", handlers.Summary.List)
		summaries.GET("/:id", handlers.Summary.Get)
		summaries.DELETE("/:id", handlers.Summary.Delete)
	}

	return router
}
