package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/dnadash-backend/internal/config"
	"github.com/stemsi/dnadash-backend/internal/handler"
	"github.com/stemsi/dnadash-backend/internal/middleware"
	"github.com/stemsi/dnadash-backend/internal/response"
	"github.com/stemsi/dnadash-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Game    *handler.GameHandler
	Attempt *handler.AttemptHandler
	WS      *handler.WSHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
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

	// Unknown paths get the envelope too, not Gin's bare 404.
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Rate limiter for login and ingest routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.StudentLogin)
		auth.POST("/teacher/login", handlers.Auth.TeacherLogin)
	}

	// ─── 2. Game Group (Session-Scoped) ────────────────────────────────
	gameAPI := router.Group("/api/v1/game")
	{
		gameAPI.GET("/:session_id", handlers.Game.GetState)
		gameAPI.POST("/:session_id/start", handlers.Game.StartGame)
		gameAPI.POST("/:session_id/begin", handlers.Game.BeginPlaying)
		gameAPI.POST("/:session_id/submit", handlers.Game.Submit)
		gameAPI.POST("/:session_id/next", handlers.Game.AdvanceLevel)
	}

	// ─── 3. Attempt Ingest (Public, Rate Limited) ──────────────────────
	// Offline clients sync locally buffered attempts through here.
	attempts := router.Group("/api/v1/attempts")
	attempts.Use(authLimiter.Middleware())
	{
		attempts.POST("", handlers.Attempt.CreateAttempt)
	}

	// ─── 4. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/game/:session_id/stream", handlers.WS.GameStream)
	}

	// ─── 5. Teacher Group (JWT) ────────────────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService))
	{
		teacherAPI.GET("/attempts", handlers.Attempt.ListAttempts)
		teacherAPI.DELETE("/attempts/:teacher_key", handlers.Attempt.DeleteTeacherAttempts)
	}

	return router
}
