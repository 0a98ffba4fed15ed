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

// DefaultDelayThresholdHours is how long a complaint may stay pending before
// the sweep promotes it to delayed and makes it public.
const DefaultDelayThresholdHours = 72

// transitions is the allowed status table. resolved and rejected are
// terminal; delayed can still be resolved.
var transitions = map[models.ComplaintStatus]map[models.ComplaintStatus]bool{
	models.StatusPending: {
		models.StatusInProgress: true,
		models.StatusResolved:   true,
		models.StatusRejected:   true,
		models.StatusDelayed:    true,
	},
	models.StatusInProgress: {
		models.StatusResolved: true,
		models.StatusRejected: true,
	},
	models.StatusDelayed: {
		models.StatusResolved: true,
	},
	models.StatusResolved: {},
	models.StatusRejected: {},
}

// CanTransition reports whether a complaint may move from one status to
// another.
func CanTransition(from, to models.ComplaintStatus) bool {
	return transitions[from][to]
}

// LifecycleService owns complaint submission, the status state machine and
// the public-disclosure sweep.
type LifecycleService struct {
	store   store.Store
	scoring *ScoringService
	now     func() time.Time
}

func NewLifecycleService(st store.Store, scoring *ScoringService) *LifecycleService {
	return &LifecycleService{store: st, scoring: scoring, now: time.Now}
}

type SubmitComplaintInput struct {
	Title        string
	Description  string
	IssueType    string
	Location     models.Location
	CitizenEmail string
	CitizenPhone string
	Priority     string
	ImageURL     *string
}

// Submit validates a citizen submission, assigns the responsible official by
// ward and persists the complaint as pending. A ward with no active official
// leaves the complaint unassigned; submission still succeeds.
func (s *LifecycleService) Submit(ctx context.Context, in SubmitComplaintInput) (*models.Complaint, error) {
	if in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	issueType := models.IssueType(strings.ToLower(strings.TrimSpace(in.IssueType)))
	if !issueType.Valid() {
		return nil, fmt.Errorf("%w: invalid issue type %q", ErrValidation, in.IssueType)
	}
	in.Location.Ward = strings.TrimSpace(in.Location.Ward)
	if in.Location.Ward == "" {
		return nil, fmt.Errorf("%w: ward is required in location", ErrValidation)
	}
	priority := models.PriorityMedium
	if in.Priority != "" {
		priority = models.Priority(in.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, in.Priority)
		}
	}

	var assigned *primitive.ObjectID
	official, err := s.store.ActiveOfficialByWard(ctx, in.Location.Ward)
	switch {
	case err == nil:
		assigned = &official.ID
	case errors.Is(err, store.ErrNotFound):
		// no active official for this ward yet
	default:
		return nil, err
	}

	now := s.now()
	complaint := &models.Complaint{
		Title:            in.Title,
		Description:      in.Description,
		IssueType:        issueType,
		Location:         in.Location,
		ImageURL:         in.ImageURL,
		CitizenEmail:     in.CitizenEmail,
		CitizenPhone:     in.CitizenPhone,
		Status:           models.StatusPending,
		Priority:         priority,
		AssignedOfficial: assigned,
		SubmittedAt:      now,
		IsPublic:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.InsertComplaint(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// UpdateStatus applies the transition table. Moving to resolved stamps
// resolvedAt and recomputes the assigned official's performance counters.
func (s *LifecycleService) UpdateStatus(ctx context.Context, id primitive.ObjectID, newStatus models.ComplaintStatus) (*models.Complaint, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, newStatus)
	}

	complaint, err := s.store.ComplaintByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanTransition(complaint.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, complaint.Status, newStatus)
	}

	var resolvedAt *time.Time
	if newStatus == models.StatusResolved {
		t := s.now()
		resolvedAt = &t
	}
	if err := s.store.UpdateComplaintStatus(ctx, id, newStatus, resolvedAt); err != nil {
		return nil, err
	}

	complaint.Status = newStatus
	if resolvedAt != nil {
		complaint.ResolvedAt = resolvedAt
	}

	if newStatus == models.StatusResolved && complaint.AssignedOfficial != nil {
		if _, err := s.scoring.Recompute(ctx, *complaint.AssignedOfficial); err != nil {
			log.Printf("Error recomputing performance for official %s: %v", complaint.AssignedOfficial.Hex(), err)
		}
	}
	return complaint, nil
}

// SweepDelayed promotes every pending complaint older than thresholdHours to
// delayed and makes it public. Idempotent: promoted complaints no longer
// match the filter. The caller owns the cadence.
func (s *LifecycleService) SweepDelayed(ctx context.Context, now time.Time, thresholdHours int) (int64, error) {
	if thresholdHours <= 0 {
		thresholdHours = DefaultDelayThresholdHours
	}
	cutoff := now.Add(-time.Duration(thresholdHours) * time.Hour)
	return s.store.PromoteStalePending(ctx, cutoff, now)
}

// PublicComplaints lists reviewable complaints, most recently disclosed
// first.
func (s *LifecycleService) PublicComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.store.PublicComplaints(ctx)
}

func (s *LifecycleService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	complaint, err := s.store.ComplaintByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return complaint, nil
}

func (s *LifecycleService) List(ctx context.Context, f store.ComplaintFilter, page, limit int) ([]models.Complaint, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.store.ListComplaints(ctx, f, page, limit)
}
