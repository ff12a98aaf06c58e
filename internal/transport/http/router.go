package httptransport

import (
	"log/slog"

	"taskhub/internal/transport/http/handler"
	"taskhub/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// tokenVerifier matches auth.TokenManager.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, taskHandler *handler.TaskHandler, tokens tokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)

	v1 := r.Group("/api/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	v1.GET("/me", authMW, userHandler.Me)

	tasks := v1.Group("/tasks", authMW)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return r
}
