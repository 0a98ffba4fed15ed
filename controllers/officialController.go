package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/services"
	authUtils "civicpulse-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OfficialController struct {
	credentials *services.CredentialService
	scoring     *services.ScoringService
}

func NewOfficialController(credentials *services.CredentialService, scoring *services.ScoringService) *OfficialController {
	return &OfficialController{credentials: credentials, scoring: scoring}
}

// Register handles official registration
func (ctl *OfficialController) Register(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required,max=50"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=6"`
		Ward       string `json:"ward" binding:"required"`
		Phone      string `json:"phone" binding:"required"`
		Department string `json:"department" binding:"required"`
		Role       string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	official, err := ctl.credentials.Register(ctx, services.RegisterInput{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password,
		Ward:       input.Ward,
		Phone:      input.Phone,
		Department: input.Department,
		Role:       models.Role(input.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Official registered successfully",
		"official": gin.H{
			"id":         official.ID,
			"name":       official.Name,
			"email":      official.Email,
			"ward":       official.Ward,
			"department": official.Department,
			"role":       official.Role,
		},
	})
}

// Login handles official login and issues a 24h token
func (ctl *OfficialController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	official, err := ctl.credentials.Verify(ctx, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := authUtils.GenerateToken(official)
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"official": gin.H{
			"id":               official.ID,
			"name":             official.Name,
			"email":            official.Email,
			"ward":             official.Ward,
			"department":       official.Department,
			"role":             official.Role,
			"performanceScore": official.PerformanceScore,
		},
	})
}

// List returns all active officials, best performing first
func (ctl *OfficialController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	officials, err := ctl.scoring.Officials(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if officials == nil {
		officials = []models.Official{}
	}

	c.JSON(http.StatusOK, officials)
}

// Dashboard returns an official's workload statistics and recent reviews
func (ctl *OfficialController) Dashboard(c *gin.Context) {
	officialID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid official ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dashboard, err := ctl.scoring.Dashboard(ctx, officialID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// RecomputePerformance recalculates an official's derived fields on demand
func (ctl *OfficialController) RecomputePerformance(c *gin.Context) {
	officialID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid official ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	official, err := ctl.scoring.Recompute(ctx, officialID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, official)
}
