package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.AuthorHandler.RegisterRoutes(v1)
		c.CategoryHandler.RegisterRoutes(v1)
		c.BookHandler.RegisterRoutes(v1)
		c.UserHandler.RegisterRoutes(v1)
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		// Redis không bắt buộc, chỉ báo trạng thái
		redisStatus := "disabled"
		if appCtx.Redis != nil {
			redisStatus = "ok"
			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		health := gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
			"audit": gin.H{
				"sink":    appCtx.Config.Audit.Sink,
				"dropped": appCtx.AuditLogger.Dropped(),
				"failed":  appCtx.AuditLogger.Failed(),
			},
		}

		if stats, err := appCtx.DB.Stats(); err == nil {
			health["pool"] = stats
		}

		c.JSON(code, health)
	}
}
