package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/services"
	"civicpulse-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const uploadDir = "uploads"

type ComplaintController struct {
	lifecycle *services.LifecycleService
}

func NewComplaintController(lifecycle *services.LifecycleService) *ComplaintController {
	return &ComplaintController{lifecycle: lifecycle}
}

// Submit handles a citizen complaint submission, with an optional image
// attached as multipart field "image". The location field is a JSON object
// encoded as a string, matching what the submission form sends.
func (ctl *ComplaintController) Submit(c *gin.Context) {
	var input struct {
		Title        string `form:"title" binding:"required,max=200"`
		Description  string `form:"description" binding:"required,max=1000"`
		IssueType    string `form:"issueType" binding:"required"`
		Location     string `form:"location" binding:"required"`
		CitizenEmail string `form:"citizenEmail"`
		CitizenPhone string `form:"citizenPhone"`
		Priority     string `form:"priority"`
	}

	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var location models.Location
	if err := json.Unmarshal([]byte(input.Location), &location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location format"})
		return
	}

	var imageURL *string
	if file, err := c.FormFile("image"); err == nil {
		filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
			respondError(c, err)
			return
		}
		url := "/" + uploadDir + "/" + filename
		imageURL = &url
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	complaint, err := ctl.lifecycle.Submit(ctx, services.SubmitComplaintInput{
		Title:        input.Title,
		Description:  input.Description,
		IssueType:    input.IssueType,
		Location:     location,
		CitizenEmail: input.CitizenEmail,
		CitizenPhone: input.CitizenPhone,
		Priority:     input.Priority,
		ImageURL:     imageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Complaint submitted successfully",
		"complaint": complaint,
	})
}

// List returns complaints for the admin dashboard with filtering and
// pagination
func (ctl *ComplaintController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := store.ComplaintFilter{
		Ward:      c.Query("ward"),
		Status:    c.Query("status"),
		IssueType: c.Query("issueType"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	complaints, total, err := ctl.lifecycle.List(ctx, filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	if limit < 1 {
		limit = 10
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"complaints":  complaints,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}

// Public returns the complaints open for citizen review
func (ctl *ComplaintController) Public(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	complaints, err := ctl.lifecycle.PublicComplaints(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	c.JSON(http.StatusOK, complaints)
}

// Get retrieves a complaint by its ID
func (ctl *ComplaintController) Get(c *gin.Context) {
	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	complaint, err := ctl.lifecycle.GetByID(ctx, complaintID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// UpdateStatus applies a status transition requested by an authenticated
// official
func (ctl *ComplaintController) UpdateStatus(c *gin.Context) {
	if _, exists := c.Get("official_id"); !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Official not authenticated"})
		return
	}

	complaintID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	complaint, err := ctl.lifecycle.UpdateStatus(ctx, complaintID, models.ComplaintStatus(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// Sweep promotes stale pending complaints to delayed and public. Meant to be
// hit by an external scheduler; safe to re-invoke.
func (ctl *ComplaintController) Sweep(c *gin.Context) {
	var input struct {
		ThresholdHours int `json:"thresholdHours"`
	}
	// Body is optional; the default threshold applies when absent.
	_ = c.ShouldBindJSON(&input)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ctl.lifecycle.SweepDelayed(ctx, time.Now(), input.ThresholdHours)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delayed complaints marked as public",
		"count":   count,
	})
}
