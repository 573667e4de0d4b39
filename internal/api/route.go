package api

import (
	"Pulse/internal/api/middleware"
	"Pulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		// 外部系统推送，不走 JWT
		webhookGroup := apiGroup.Group("/webhooks")
		{
			webhookGroup.GET("/instagram", group.WebhookHandler.Verify)
			webhookGroup.POST("/instagram", group.WebhookHandler.Receive)
		}

		projectGroup := apiGroup.Group("/projects")
		projectGroup.Use(middleware.AuthMiddleware())
		{
			projectGroup.POST("", group.ProjectHandler.CreateProject)
			projectGroup.GET("", group.ProjectHandler.ListProjects)
			projectGroup.GET("/:project_id", group.ProjectHandler.GetProject)

			projectGroup.PUT("/:project_id/onboarding", group.ProjectHandler.SaveOnboarding)
			projectGroup.GET("/:project_id/onboarding", group.ProjectHandler.GetOnboarding)

			projectGroup.POST("/:project_id/metrics", group.MetricHandler.UpsertMetrics)
			projectGroup.GET("/:project_id/metrics", group.MetricHandler.GetMetrics)

			reportGroup := projectGroup.Group("/:project_id/reports")
			{
				reportGroup.POST("", group.ReportHandler.Generate)
				reportGroup.GET("", group.ReportHandler.List)
				reportGroup.GET("/latest", group.ReportHandler.GetLatest)
				reportGroup.GET("/quota", group.ReportHandler.Quota)
				reportGroup.GET("/search", group.ReportHandler.Search)
				reportGroup.GET("/generations", group.ReportHandler.ListGenerations)
				reportGroup.POST("/:report_id/export", group.ReportHandler.Export)
			}
		}
	}

	return r
}
