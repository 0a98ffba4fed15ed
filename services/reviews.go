package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxCommentLength = 500

// ReviewService is the admission gate for citizen reviews. Every accepted
// review triggers a synchronous recompute of the official's performance.
type ReviewService struct {
	store   store.Store
	scoring *ScoringService
	now     func() time.Time
}

func NewReviewService(st store.Store, scoring *ScoringService) *ReviewService {
	return &ReviewService{store: st, scoring: scoring, now: time.Now}
}

type SubmitReviewInput struct {
	ComplaintID  primitive.ObjectID
	CitizenEmail string
	Rating       int
	Comment      string
	IsAnonymous  bool
}

// Submit runs the admission checks in order: the complaint exists, is
// public, has an assigned official, the citizen has not reviewed it yet and
// the rating is in range. On success the review is persisted with its
// response time and the official's score is recomputed.
func (s *ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	email := strings.ToLower(strings.TrimSpace(in.CitizenEmail))
	if email == "" {
		return nil, fmt.Errorf("%w: citizen email is required", ErrValidation)
	}
	if len(in.Comment) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrValidation, maxCommentLength)
	}

	complaint, err := s.store.ComplaintByID(ctx, in.ComplaintID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !complaint.IsPublic {
		return nil, ErrNotPublic
	}
	if complaint.AssignedOfficial == nil {
		return nil, ErrNoOfficialAssigned
	}

	exists, err := s.store.HasReview(ctx, complaint.ID, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	// Hours between submission and resolution, or until now if the
	// complaint never got resolved.
	var responseTime float64
	if complaint.ResolvedAt != nil {
		responseTime = complaint.ResolvedAt.Sub(complaint.SubmittedAt).Hours()
	} else {
		responseTime = s.now().Sub(complaint.SubmittedAt).Hours()
	}

	review := &models.Review{
		Complaint:    complaint.ID,
		Official:     *complaint.AssignedOfficial,
		CitizenEmail: email,
		Rating:       in.Rating,
		Comment:      in.Comment,
		ResponseTime: responseTime,
		IsAnonymous:  in.IsAnonymous,
		CreatedAt:    s.now(),
	}

	// The unique (complaint, citizenEmail) index settles the race two
	// simultaneous submissions would have on the pre-check above.
	if err := s.store.InsertReview(ctx, review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if _, err := s.scoring.Recompute(ctx, review.Official); err != nil {
		log.Printf("Error recomputing performance for official %s: %v", review.Official.Hex(), err)
	}

	return review, nil
}

// OfficialReviews contains a page of an official's reviews together with
// their overall average rating.
type OfficialReviews struct {
	Reviews       []models.Review
	Total         int64
	AverageRating float64
}

func (s *ReviewService) ForOfficial(ctx context.Context, officialID primitive.ObjectID, page, limit int) (*OfficialReviews, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	reviews, total, err := s.store.ReviewsByOfficial(ctx, officialID, page, limit)
	if err != nil {
		return nil, err
	}

	all, err := s.store.AllReviewsByOfficial(ctx, officialID)
	if err != nil {
		return nil, err
	}
	var avg float64
	if len(all) > 0 {
		var sum int
		for _, r := range all {
			sum += r.Rating
		}
		avg = round2(float64(sum) / float64(len(all)))
	}

	return &OfficialReviews{Reviews: reviews, Total: total, AverageRating: avg}, nil
}

func (s *ReviewService) ForComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]models.Review, error) {
	return s.store.ReviewsByComplaint(ctx, complaintID)
}

func (s *ReviewService) List(ctx context.Context, page, limit int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.ListReviews(ctx, page, limit)
}
