package httpapi

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route of the service.
func (h *Handler) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())
	router.MaxMultipartMemory = h.maxUploadSize

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	router.POST("/users", h.Register)
	router.POST("/auth/login", h.Login)

	protected := router.Group("/", h.Guard())
	{
		protected.POST("/images", h.AddImage)
		protected.GET("/images", h.ListImages)
		protected.GET("/images/:id", h.GetImage)
		protected.DELETE("/images/:id", h.DeleteImage)

		protected.POST("/features", h.AddFeatures)
		protected.GET("/features/:id", h.ListFeatures)

		protected.POST("/uploads", h.Upload)
	}

	return router
}
