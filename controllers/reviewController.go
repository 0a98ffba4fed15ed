package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewController struct {
	reviews *services.ReviewService
	scoring *services.ScoringService
}

func NewReviewController(reviews *services.ReviewService, scoring *services.ScoringService) *ReviewController {
	return &ReviewController{reviews: reviews, scoring: scoring}
}

// Submit handles a citizen review of a public complaint
func (ctl *ReviewController) Submit(c *gin.Context) {
	var input struct {
		ComplaintID  string `json:"complaintId" binding:"required"`
		CitizenEmail string `json:"citizenEmail" binding:"required,email"`
		Rating       int    `json:"rating" binding:"required"`
		Comment      string `json:"comment"`
		IsAnonymous  bool   `json:"isAnonymous"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(input.ComplaintID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	review, err := ctl.reviews.Submit(ctx, services.SubmitReviewInput{
		ComplaintID:  complaintID,
		CitizenEmail: input.CitizenEmail,
		Rating:       input.Rating,
		Comment:      input.Comment,
		IsAnonymous:  input.IsAnonymous,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// ByOfficial returns a page of an official's reviews with their average
// rating
func (ctl *ReviewController) ByOfficial(c *gin.Context) {
	officialID, err := primitive.ObjectIDFromHex(c.Param("officialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid official ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ctl.reviews.ForOfficial(ctx, officialID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Reviews == nil {
		result.Reviews = []models.Review{}
	}

	if limit < 1 {
		limit = 10
	}
	totalPages := (result.Total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"reviews":       result.Reviews,
		"totalPages":    totalPages,
		"currentPage":   page,
		"total":         result.Total,
		"averageRating": result.AverageRating,
	})
}

// ByComplaint returns all reviews for a complaint, newest first
func (ctl *ReviewController) ByComplaint(c *gin.Context) {
	complaintID, err := primitive.ObjectIDFromHex(c.Param("complaintId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reviews, err := ctl.reviews.ForComplaint(ctx, complaintID)
	if err != nil {
		respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, reviews)
}

// Public returns all reviews, paginated, newest first
func (ctl *ReviewController) Public(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reviews, total, err := ctl.reviews.List(ctx, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	if limit < 1 {
		limit = 20
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"reviews":     reviews,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}

// Leaderboard returns the best performing active officials
func (ctl *ReviewController) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	officials, err := ctl.scoring.Leaderboard(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if officials == nil {
		officials = []models.Official{}
	}

	c.JSON(http.StatusOK, officials)
}
