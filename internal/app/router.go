package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/docs"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/middleware"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/login", c.auth.Login)

		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware(cfg))
		auth.Use(middleware.ActivityMiddleware(repos.user))
		{
			auth.GET("/profile", c.auth.GetProfile)
			auth.GET("/dashboard", c.dashboard.EngineerStats)
			auth.GET("/topics", c.dashboard.ListTopics)

			auth.GET("/assessments", c.assessment.List)
			auth.GET("/assessments/:id", c.assessment.Get)
			auth.POST("/assessments/:id/submit", c.assessment.Submit)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		admin.Use(middleware.ActivityMiddleware(repos.user))
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/dashboard", c.dashboard.AdminStats)
			admin.GET("/engineers", c.dashboard.ListEngineers)

			admin.POST("/assessments", c.assessment.Create)
			admin.GET("/review", c.assessment.ReviewQueue)
			admin.POST("/assessments/:id/grade", c.assessment.Grade)

			admin.POST("/resumes/scan", c.resume.Scan)
			admin.GET("/resumes/report", c.resume.LastReport)
		}
	}
}
