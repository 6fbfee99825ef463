package router

import "github.com/gin-gonic/gin"

// tagRoutes defines the tag endpoints, all behind authentication
func (r *Router) tagRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	tags.Use(r.sessionMw.RequireAuth())
	{
		tags.GET("", r.tagHandler.List)
		tags.POST("", r.tagHandler.Create)
		tags.GET("/:id", r.tagHandler.Get)
		tags.PUT("/:id", r.tagHandler.Update)
		tags.DELETE("/:id", r.tagHandler.Delete)
	}
}
