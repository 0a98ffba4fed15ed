package routes

import (
	"civicpulse-be/controllers"
	"civicpulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ReviewRoutes sets up the review and leaderboard routes
func ReviewRoutes(r *gin.Engine, ctl *controllers.ReviewController, limiter gin.HandlerFunc) {
	review := r.Group("/api/reviews")
	{
		review.POST("", limiter, ctl.Submit)
		review.GET("/official/:officialId", middlewares.AuthMiddleware(), ctl.ByOfficial)
		review.GET("/complaint/:complaintId", ctl.ByComplaint)
		review.GET("/public", ctl.Public)
		review.GET("/leaderboard", ctl.Leaderboard)
	}
}
