package services

import (
	"context"
	"errors"
	"math"

	"civicpulse-be/models"
	"civicpulse-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultLeaderboardLimit = 10

// ScoringService recomputes an official's derived performance fields from
// the reviews and complaints that reference them. The stored values are
// caches; Recompute is the single write path and is safe to call
// redundantly.
type ScoringService struct {
	store store.Store
}

func NewScoringService(st store.Store) *ScoringService {
	return &ScoringService{store: st}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Recompute derives performanceScore (mean rating, 2 decimals, 0 with no
// reviews), the complaint counters and the average resolution time, and
// writes them back. Returns the updated official.
func (s *ScoringService) Recompute(ctx context.Context, officialID primitive.ObjectID) (*models.Official, error) {
	if _, err := s.store.OfficialByID(ctx, officialID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviews, err := s.store.AllReviewsByOfficial(ctx, officialID)
	if err != nil {
		return nil, err
	}
	var score float64
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		score = round2(float64(sum) / float64(len(reviews)))
	}

	total, err := s.store.CountComplaintsByOfficial(ctx, officialID, nil)
	if err != nil {
		return nil, err
	}
	resolvedStatus := models.StatusResolved
	resolved, err := s.store.CountComplaintsByOfficial(ctx, officialID, &resolvedStatus)
	if err != nil {
		return nil, err
	}

	complaints, err := s.store.ComplaintsByOfficial(ctx, officialID)
	if err != nil {
		return nil, err
	}
	avgResolution := averageResolutionHours(complaints)

	if err := s.store.UpdateOfficialPerformance(ctx, officialID, score, total, resolved, avgResolution); err != nil {
		return nil, err
	}
	return s.store.OfficialByID(ctx, officialID)
}

// averageResolutionHours is display-grade: mean of resolvedAt-submittedAt
// over complaints that have been resolved, in hours.
func averageResolutionHours(complaints []models.Complaint) float64 {
	var sum float64
	var n int
	for _, c := range complaints {
		if c.ResolvedAt == nil {
			continue
		}
		sum += c.ResolvedAt.Sub(c.SubmittedAt).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// Leaderboard returns the best performing active officials, highest score
// first. Ties keep insertion order.
func (s *ScoringService) Leaderboard(ctx context.Context, limit int) ([]models.Official, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	return s.store.ActiveOfficials(ctx, limit)
}

// Officials lists all active officials, highest score first.
func (s *ScoringService) Officials(ctx context.Context) ([]models.Official, error) {
	return s.store.ActiveOfficials(ctx, 0)
}

// DashboardStats summarizes an official's workload.
type DashboardStats struct {
	TotalComplaints       int64   `json:"totalComplaints"`
	PendingComplaints     int64   `json:"pendingComplaints"`
	ResolvedComplaints    int64   `json:"resolvedComplaints"`
	DelayedComplaints     int64   `json:"delayedComplaints"`
	AverageResolutionTime float64 `json:"averageResolutionTime"`
}

// Dashboard holds the data behind an official's dashboard page.
type Dashboard struct {
	Official      *models.Official   `json:"official"`
	Statistics    DashboardStats     `json:"statistics"`
	Complaints    []models.Complaint `json:"complaints"`
	RecentReviews []models.Review    `json:"recentReviews"`
}

// Dashboard derives the statistics live from the official's complaints and
// returns their five most recent reviews.
func (s *ScoringService) Dashboard(ctx context.Context, officialID primitive.ObjectID) (*Dashboard, error) {
	official, err := s.store.OfficialByID(ctx, officialID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	complaints, err := s.store.ComplaintsByOfficial(ctx, officialID)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{TotalComplaints: int64(len(complaints))}
	for _, c := range complaints {
		switch c.Status {
		case models.StatusPending:
			stats.PendingComplaints++
		case models.StatusResolved:
			stats.ResolvedComplaints++
		case models.StatusDelayed:
			stats.DelayedComplaints++
		}
	}
	stats.AverageResolutionTime = averageResolutionHours(complaints)

	recent, _, err := s.store.ReviewsByOfficial(ctx, officialID, 1, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Official:      official,
		Statistics:    stats,
		Complaints:    complaints,
		RecentReviews: recent,
	}, nil
}
