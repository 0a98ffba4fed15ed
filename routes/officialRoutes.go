package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// OfficialRoutes sets up the official account and dashboard routes
func OfficialRoutes(r *gin.Engine, ctl *controllers.OfficialController) {
	official := r.Group("/api/officials")
	{
		official.POST("/register", ctl.Register)
		official.POST("/login", ctl.Login)
		official.GET("", middlewares.AuthMiddleware(), ctl.List)
		official.GET("/:id/dashboard", middlewares.AuthMiddleware(), ctl.Dashboard)
		official.PATCH("/:id/performance", middlewares.AuthMiddleware(), ctl.RecomputePerformance)
	}
}
