package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var officialSeq int

func seedOfficial(t *testing.T, st *store.MemoryStore, ward string, active bool) *models.Official {
	t.Helper()
	officialSeq++
	o := &models.Official{
		Name: "Officer " + ward, Email: fmt.Sprintf("officer%d@city.gov", officialSeq), Password: "hashed",
		Role: models.RoleWardOfficer, Ward: ward, Phone: "1", Department: "Works",
		IsActive: active,
	}
	if err := st.InsertOfficial(context.Background(), o); err != nil {
		t.Fatalf("seed official: %v", err)
	}
	return o
}

func newLifecycleService(st *store.MemoryStore) *LifecycleService {
	return NewLifecycleService(st, NewScoringService(st))
}

func validSubmitInput(ward string) SubmitComplaintInput {
	return SubmitComplaintInput{
		Title:        "Overflowing bin",
		Description:  "Garbage bin has not been emptied for a week",
		IssueType:    "garbage",
		Location:     models.Location{Address: "12 Main St", Ward: ward},
		CitizenEmail: "citizen@example.com",
		CitizenPhone: "5550100",
	}
}

func TestSubmitAssignsWardOfficial(t *testing.T) {
	st := store.NewMemoryStore()
	first := seedOfficial(t, st, "Ward 1", true)
	seedOfficial(t, st, "Ward 2", true)
	svc := newLifecycleService(st)

	complaint, err := svc.Submit(context.Background(), validSubmitInput("Ward 1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if complaint.AssignedOfficial == nil || *complaint.AssignedOfficial != first.ID {
		t.Errorf("assignedOfficial = %v, want %s", complaint.AssignedOfficial, first.ID.Hex())
	}
	if complaint.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", complaint.Status)
	}
	if complaint.IsPublic {
		t.Error("new complaint should not be public")
	}
	if complaint.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium", complaint.Priority)
	}
	if complaint.SubmittedAt.IsZero() {
		t.Error("submittedAt not set")
	}
}

func TestSubmitDeterministicAssignment(t *testing.T) {
	st := store.NewMemoryStore()
	first := seedOfficial(t, st, "Ward 1", true)
	seedOfficial(t, st, "Ward 1", true) // second officer in the same ward
	svc := newLifecycleService(st)

	in := validSubmitInput("Ward 1")
	in.CitizenEmail = "other@example.com"
	complaint, err := svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if complaint.AssignedOfficial == nil || *complaint.AssignedOfficial != first.ID {
		t.Error("assignment should pick the lowest-id active official")
	}
}

func TestSubmitWithoutMatchingOfficial(t *testing.T) {
	st := store.NewMemoryStore()
	seedOfficial(t, st, "Ward 1", false) // inactive, must not be assigned
	svc := newLifecycleService(st)

	complaint, err := svc.Submit(context.Background(), validSubmitInput("Ward 1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if complaint.AssignedOfficial != nil {
		t.Error("complaint should be unassigned when the ward has no active official")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newLifecycleService(store.NewMemoryStore())

	cases := []struct {
		name   string
		mutate func(*SubmitComplaintInput)
	}{
		{"missing ward", func(in *SubmitComplaintInput) { in.Location.Ward = "  " }},
		{"missing title", func(in *SubmitComplaintInput) { in.Title = "" }},
		{"missing description", func(in *SubmitComplaintInput) { in.Description = "" }},
		{"bad issue type", func(in *SubmitComplaintInput) { in.IssueType = "ufo-sighting" }},
		{"bad priority", func(in *SubmitComplaintInput) { in.Priority = "urgent" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSubmitInput("Ward 1")
			tc.mutate(&in)
			if _, err := svc.Submit(context.Background(), in); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.ComplaintStatus
		allowed  bool
	}{
		{models.StatusPending, models.StatusInProgress, true},
		{models.StatusPending, models.StatusResolved, true},
		{models.StatusPending, models.StatusRejected, true},
		{models.StatusPending, models.StatusDelayed, true},
		{models.StatusInProgress, models.StatusResolved, true},
		{models.StatusInProgress, models.StatusRejected, true},
		{models.StatusInProgress, models.StatusDelayed, false},
		{models.StatusInProgress, models.StatusPending, false},
		{models.StatusDelayed, models.StatusResolved, true},
		{models.StatusDelayed, models.StatusRejected, false},
		{models.StatusResolved, models.StatusPending, false},
		{models.StatusResolved, models.StatusInProgress, false},
		{models.StatusRejected, models.StatusResolved, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestUpdateStatusResolvedStampsResolvedAt(t *testing.T) {
	st := store.NewMemoryStore()
	seedOfficial(t, st, "Ward 1", true)
	svc := newLifecycleService(st)

	complaint, err := svc.Submit(context.Background(), validSubmitInput("Ward 1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	resolved, err := svc.UpdateStatus(context.Background(), complaint.ID, models.StatusResolved)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if resolved.Status != models.StatusResolved {
		t.Errorf("status = %q, want resolved", resolved.Status)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("resolvedAt not stamped")
	}
	if resolved.ResolvedAt.Before(complaint.SubmittedAt) {
		t.Error("resolvedAt earlier than submittedAt")
	}

	// Resolved is terminal; a second transition must fail and leave the
	// timestamp untouched.
	if _, err := svc.UpdateStatus(context.Background(), complaint.ID, models.StatusResolved); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second resolve err = %v, want ErrInvalidTransition", err)
	}
	stored, err := svc.GetByID(context.Background(), complaint.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ResolvedAt == nil || !stored.ResolvedAt.Equal(*resolved.ResolvedAt) {
		t.Error("resolvedAt changed by rejected transition")
	}
}

func TestUpdateStatusResolvedRecomputesPerformance(t *testing.T) {
	st := store.NewMemoryStore()
	official := seedOfficial(t, st, "Ward 1", true)
	svc := newLifecycleService(st)

	complaint, err := svc.Submit(context.Background(), validSubmitInput("Ward 1"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), complaint.ID, models.StatusResolved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	updated, err := st.OfficialByID(context.Background(), official.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalComplaints != 1 {
		t.Errorf("totalComplaints = %d, want 1", updated.TotalComplaints)
	}
	if updated.ResolvedComplaints != 1 {
		t.Errorf("resolvedComplaints = %d, want 1", updated.ResolvedComplaints)
	}
	if updated.PerformanceScore != 0 {
		t.Errorf("performanceScore = %v, want 0 with no reviews", updated.PerformanceScore)
	}
}

func TestUpdateStatusTerminalAndUnknown(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newLifecycleService(st)

	complaint, err := svc.Submit(context.Background(), validSubmitInput("Ward 5"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), complaint.ID, models.StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), complaint.ID, models.StatusInProgress); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), complaint.ID, "archived"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status err = %v, want ErrValidation", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), models.StatusResolved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing complaint err = %v, want ErrNotFound", err)
	}
}

func TestSweepDelayedIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newLifecycleService(st)
	now := time.Now()

	// One complaint four days old, one fresh.
	svc.now = func() time.Time { return now.Add(-4 * 24 * time.Hour) }
	stale, err := svc.Submit(context.Background(), validSubmitInput("Ward 1"))
	if err != nil {
		t.Fatalf("Submit stale: %v", err)
	}
	svc.now = func() time.Time { return now.Add(-time.Hour) }
	fresh, err := svc.Submit(context.Background(), validSubmitInput("Ward 2"))
	if err != nil {
		t.Fatalf("Submit fresh: %v", err)
	}

	count, err := svc.SweepDelayed(context.Background(), now, 72)
	if err != nil {
		t.Fatalf("SweepDelayed: %v", err)
	}
	if count != 1 {
		t.Fatalf("first sweep count = %d, want 1", count)
	}

	swept, err := svc.GetByID(context.Background(), stale.ID)
	if err != nil {
		t.Fatal(err)
	}
	if swept.Status != models.StatusDelayed || !swept.IsPublic {
		t.Errorf("swept complaint status=%q isPublic=%v, want delayed/public", swept.Status, swept.IsPublic)
	}
	if swept.PublicAt == nil || !swept.PublicAt.Equal(now) {
		t.Error("publicAt not stamped with sweep time")
	}

	untouched, err := svc.GetByID(context.Background(), fresh.ID)
	if err != nil {
		t.Fatal(err)
	}
	if untouched.Status != models.StatusPending || untouched.IsPublic {
		t.Error("fresh complaint should be untouched by the sweep")
	}

	count, err = svc.SweepDelayed(context.Background(), now, 72)
	if err != nil {
		t.Fatalf("second SweepDelayed: %v", err)
	}
	if count != 0 {
		t.Errorf("second sweep count = %d, want 0", count)
	}
}

func TestPublicComplaintsOrdering(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newLifecycleService(st)
	now := time.Now()

	early := now.Add(-2 * time.Hour)
	late := now.Add(-1 * time.Hour)
	c1 := &models.Complaint{
		Title: "first", Description: "d", IssueType: models.IssueGarbage,
		Location: models.Location{Ward: "Ward 1"}, Status: models.StatusDelayed,
		Priority: models.PriorityMedium, SubmittedAt: now.Add(-100 * time.Hour),
		IsPublic: true, PublicAt: &early,
	}
	c2 := &models.Complaint{
		Title: "second", Description: "d", IssueType: models.IssuePothole,
		Location: models.Location{Ward: "Ward 2"}, Status: models.StatusResolved,
		Priority: models.PriorityMedium, SubmittedAt: now.Add(-100 * time.Hour),
		IsPublic: true, PublicAt: &late,
	}
	c3 := &models.Complaint{
		Title: "not public", Description: "d", IssueType: models.IssueWater,
		Location: models.Location{Ward: "Ward 3"}, Status: models.StatusPending,
		Priority: models.PriorityMedium, SubmittedAt: now,
	}
	for _, c := range []*models.Complaint{c1, c2, c3} {
		if err := st.InsertComplaint(context.Background(), c); err != nil {
			t.Fatal(err)
		}
	}

	public, err := svc.PublicComplaints(context.Background())
	if err != nil {
		t.Fatalf("PublicComplaints: %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("len(public) = %d, want 2", len(public))
	}
	if public[0].Title != "second" || public[1].Title != "first" {
		t.Errorf("public complaints not ordered by publicAt descending: %q, %q", public[0].Title, public[1].Title)
	}
}
