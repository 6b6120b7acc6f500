package routes

import (
	"github.com/easayliu/url-tree/internal/application/services"
	"github.com/easayliu/url-tree/internal/infrastructure/config"
	"github.com/easayliu/url-tree/internal/infrastructure/metrics"
	"github.com/easayliu/url-tree/internal/interfaces/http/handlers"
	"github.com/easayliu/url-tree/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes 使用ServiceContainer设置路由
func SetupRoutes(cfg *config.Config, container *services.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics())
	}
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.ContainerMiddleware(container))

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	treeHandler := handlers.NewTreeHandler(container)

	// API 路由组
	api := router.Group("/api/v1")
	{
		// 健康检查
		api.GET("/health", handlers.HealthCheck)

		tree := api.Group("/tree")
		{
			tree.GET("", treeHandler.GetTree)
			tree.GET("/status", treeHandler.GetStatus)
			tree.POST("/refresh", treeHandler.Refresh)
		}
	}

	return router
}
