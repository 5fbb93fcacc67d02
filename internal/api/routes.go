package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Devfolio API
// @version 1.0
// @description GitHub profile analytics and resume builder API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := r.Group("/api/v1")
	{
		github := v1.Group("/github")
		{
			github.POST("/sync", h.SyncGitHubData)
			github.GET("", h.GetGitHubData)
		}

		resumes := v1.Group("/resumes")
		{
			resumes.GET("", h.ListResumes)
			resumes.POST("", h.CreateResume)
			resumes.GET("/:id", h.GetResume)
			resumes.PUT("/:id", h.UpdateResume)
			resumes.DELETE("/:id", h.DeleteResume)
		}

		public := v1.Group("/public")
		{
			public.GET("/resumes/:slug", h.GetPublicResume)
		}
	}

	return r
}
