package router

import "github.com/gin-gonic/gin"

// noteRoutes defines the note endpoints, all behind authentication
func (r *Router) noteRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	notes.Use(r.sessionMw.RequireAuth())
	{
		notes.GET("", r.noteHandler.List)
		notes.POST("", r.noteHandler.Create)
		notes.GET("/:id", r.noteHandler.Get)
		notes.PUT("/:id", r.noteHandler.Update)
		notes.DELETE("/:id", r.noteHandler.Delete)
		notes.POST("/:id/summarize", r.noteHandler.Summarize)
	}
}
