package router

import "github.com/gin-gonic/gin"

// authRoutes defines the account endpoints
func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/forgotpassword", r.authHandler.ForgotPassword)
		auth.PUT("/resetpassword/:resettoken", r.authHandler.ResetPassword)

		// Protected routes
		protected := auth.Group("")
		protected.Use(r.sessionMw.RequireAuth())
		{
			protected.GET("/logout", r.authHandler.Logout)
			protected.GET("/me", r.authHandler.Me)
			protected.PUT("/updatedetails", r.authHandler.UpdateDetails)
			protected.PUT("/updatepassword", r.authHandler.UpdatePassword)
		}
	}
}
