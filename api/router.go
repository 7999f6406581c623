package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/tg-vidbot/api/handlers"
	"github.com/yourusername/tg-vidbot/api/middleware"
	"github.com/yourusername/tg-vidbot/internal/domain"
)

// SetupRouter sets up the HTTP router for the status API
func SetupRouter(repo domain.RequestRepository, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	// Health endpoint
	healthHandler := handlers.NewHealthHandler()
	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		requestHandler := handlers.NewRequestHandler(repo, log)
		requests := v1.Group("/requests")
		{
			requests.GET("", requestHandler.ListRequests)
			requests.GET("/stats", requestHandler.GetStats)
			requests.GET("/:id", requestHandler.GetRequest)
		}
	}

	return router
}
