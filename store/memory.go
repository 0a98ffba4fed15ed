package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"civicpulse-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store used by the test suite and for running
// the service without a database. It enforces the same uniqueness rules as
// the Mongo indexes.
type MemoryStore struct {
	mu         sync.RWMutex
	complaints []models.Complaint
	officials  []models.Official
	reviews    []models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func matchesFilter(c models.Complaint, f ComplaintFilter) bool {
	if f.Ward != "" && c.Location.Ward != f.Ward {
		return false
	}
	if f.Status != "" && string(c.Status) != f.Status {
		return false
	}
	if f.IssueType != "" && string(c.IssueType) != f.IssueType {
		return false
	}
	return true
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Complaints

func (s *MemoryStore) InsertComplaint(_ context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.complaints = append(s.complaints, *c)
	return nil
}

func (s *MemoryStore) ComplaintByID(_ context.Context, id primitive.ObjectID) (*models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			c := s.complaints[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateComplaintStatus(_ context.Context, id primitive.ObjectID, status models.ComplaintStatus, resolvedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints[i].Status = status
			if resolvedAt != nil {
				t := *resolvedAt
				s.complaints[i].ResolvedAt = &t
			}
			s.complaints[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListComplaints(_ context.Context, f ComplaintFilter, page, limit int) ([]models.Complaint, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Complaint
	for _, c := range s.complaints {
		if matchesFilter(c, f) {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})
	return paginate(matched, page, limit), int64(len(matched)), nil
}

func (s *MemoryStore) PublicComplaints(_ context.Context) ([]models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var public []models.Complaint
	for _, c := range s.complaints {
		if c.IsPublic && (c.Status == models.StatusResolved || c.Status == models.StatusDelayed) {
			public = append(public, c)
		}
	}
	sort.SliceStable(public, func(i, j int) bool {
		var ti, tj time.Time
		if public[i].PublicAt != nil {
			ti = *public[i].PublicAt
		}
		if public[j].PublicAt != nil {
			tj = *public[j].PublicAt
		}
		return ti.After(tj)
	})
	return public, nil
}

func (s *MemoryStore) PromoteStalePending(_ context.Context, cutoff, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for i := range s.complaints {
		c := &s.complaints[i]
		if c.Status == models.StatusPending && c.SubmittedAt.Before(cutoff) && !c.IsPublic {
			c.Status = models.StatusDelayed
			c.IsPublic = true
			t := now
			c.PublicAt = &t
			c.UpdatedAt = now
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) ComplaintsByOfficial(_ context.Context, officialID primitive.ObjectID) ([]models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var assigned []models.Complaint
	for _, c := range s.complaints {
		if c.AssignedOfficial != nil && *c.AssignedOfficial == officialID {
			assigned = append(assigned, c)
		}
	}
	sort.SliceStable(assigned, func(i, j int) bool {
		return assigned[i].SubmittedAt.After(assigned[j].SubmittedAt)
	})
	return assigned, nil
}

func (s *MemoryStore) CountComplaintsByOfficial(_ context.Context, officialID primitive.ObjectID, status *models.ComplaintStatus) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, c := range s.complaints {
		if c.AssignedOfficial == nil || *c.AssignedOfficial != officialID {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		count++
	}
	return count, nil
}

// Officials

func (s *MemoryStore) InsertOfficial(_ context.Context, o *models.Official) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.officials {
		if existing.Email == o.Email {
			return ErrDuplicate
		}
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.officials = append(s.officials, *o)
	return nil
}

func (s *MemoryStore) OfficialByID(_ context.Context, id primitive.ObjectID) (*models.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.officials {
		if s.officials[i].ID == id {
			o := s.officials[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) OfficialByEmail(_ context.Context, email string) (*models.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.officials {
		if s.officials[i].Email == email {
			o := s.officials[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ActiveOfficialByWard(_ context.Context, ward string) (*models.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *models.Official
	for i := range s.officials {
		o := &s.officials[i]
		if !o.IsActive || o.Ward != ward {
			continue
		}
		if best == nil || strings.Compare(o.ID.Hex(), best.ID.Hex()) < 0 {
			best = o
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	o := *best
	return &o, nil
}

func (s *MemoryStore) ActiveOfficials(_ context.Context, limit int) ([]models.Official, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []models.Official
	for _, o := range s.officials {
		if o.IsActive {
			active = append(active, o)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].PerformanceScore > active[j].PerformanceScore
	})
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

func (s *MemoryStore) UpdateOfficialPerformance(_ context.Context, id primitive.ObjectID, score float64, total, resolved int64, avgResolutionHours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.officials {
		if s.officials[i].ID == id {
			s.officials[i].PerformanceScore = score
			s.officials[i].TotalComplaints = total
			s.officials[i].ResolvedComplaints = resolved
			s.officials[i].AverageResolutionTime = avgResolutionHours
			s.officials[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

// Reviews

func (s *MemoryStore) InsertReview(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reviews {
		if existing.Complaint == r.Complaint && existing.CitizenEmail == r.CitizenEmail {
			return ErrDuplicate
		}
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	s.reviews = append(s.reviews, *r)
	return nil
}

func (s *MemoryStore) HasReview(_ context.Context, complaintID primitive.ObjectID, citizenEmail string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.Complaint == complaintID && r.CitizenEmail == citizenEmail {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ReviewsByOfficial(ctx context.Context, officialID primitive.ObjectID, page, limit int) ([]models.Review, int64, error) {
	all, err := s.AllReviewsByOfficial(ctx, officialID)
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page, limit), int64(len(all)), nil
}

func (s *MemoryStore) AllReviewsByOfficial(_ context.Context, officialID primitive.ObjectID) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Review
	for _, r := range s.reviews {
		if r.Official == officialID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *MemoryStore) ReviewsByComplaint(_ context.Context, complaintID primitive.ObjectID) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.Review
	for _, r := range s.reviews {
		if r.Complaint == complaintID {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemoryStore) ListReviews(_ context.Context, page, limit int) ([]models.Review, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Review, len(s.reviews))
	copy(all, s.reviews)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page, limit), int64(len(all)), nil
}
