package routes

import (
	"stockroom/internal/core/container"
	"stockroom/internal/metrics"
	"stockroom/internal/middleware"
	"stockroom/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	container.ItemHandler.RegisterRoutes(protectedRoutes)
	container.CategoryHandler.RegisterRoutes(protectedRoutes)
	container.PresetHandler.RegisterRoutes(protectedRoutes)
	container.PurchaseHandler.RegisterRoutes(protectedRoutes)
	container.TransactionHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
	router.GET("/metrics", metrics.Handler())
}
