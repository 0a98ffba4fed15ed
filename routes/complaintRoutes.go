package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the complaint routes
func ComplaintRoutes(r *gin.Engine, ctl *controllers.ComplaintController, limiter gin.HandlerFunc) {
	complaint := r.Group("/api/complaints")
	{
		complaint.POST("", limiter, ctl.Submit)
		complaint.GET("", middlewares.AuthMiddleware(), ctl.List)
		complaint.GET("/public", ctl.Public)
		complaint.POST("/mark-delayed-public", ctl.Sweep)
		complaint.GET("/:id", ctl.Get)
		complaint.PATCH("/:id/status", middlewares.AuthMiddleware(), ctl.UpdateStatus)
	}
}
