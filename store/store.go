package store

import (
	"context"
	"errors"
	"time"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("store: duplicate key")
)

// ComplaintFilter narrows complaint listings. Empty fields match everything.
type ComplaintFilter struct {
	Ward      string
	Status    string
	IssueType string
}

// Store is the persistence handle injected into every service.
// Both the Mongo-backed implementation and the in-memory one used by
// tests satisfy it.
type Store interface {
	// Complaints
	InsertComplaint(ctx context.Context, c *models.Complaint) error
	ComplaintByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id primitive.ObjectID, status models.ComplaintStatus, resolvedAt *time.Time) error
	ListComplaints(ctx context.Context, f ComplaintFilter, page, limit int) ([]models.Complaint, int64, error)
	PublicComplaints(ctx context.Context) ([]models.Complaint, error)
	PromoteStalePending(ctx context.Context, cutoff, now time.Time) (int64, error)
	ComplaintsByOfficial(ctx context.Context, officialID primitive.ObjectID) ([]models.Complaint, error)
	CountComplaintsByOfficial(ctx context.Context, officialID primitive.ObjectID, status *models.ComplaintStatus) (int64, error)

	// Officials
	InsertOfficial(ctx context.Context, o *models.Official) error
	OfficialByID(ctx context.Context, id primitive.ObjectID) (*models.Official, error)
	OfficialByEmail(ctx context.Context, email string) (*models.Official, error)
	ActiveOfficialByWard(ctx context.Context, ward string) (*models.Official, error)
	ActiveOfficials(ctx context.Context, limit int) ([]models.Official, error)
	UpdateOfficialPerformance(ctx context.Context, id primitive.ObjectID, score float64, total, resolved int64, avgResolutionHours float64) error

	// Reviews
	InsertReview(ctx context.Context, r *models.Review) error
	HasReview(ctx context.Context, complaintID primitive.ObjectID, citizenEmail string) (bool, error)
	ReviewsByOfficial(ctx context.Context, officialID primitive.ObjectID, page, limit int) ([]models.Review, int64, error)
	AllReviewsByOfficial(ctx context.Context, officialID primitive.ObjectID) ([]models.Review, error)
	ReviewsByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]models.Review, error)
	ListReviews(ctx context.Context, page, limit int) ([]models.Review, int64, error)
}
