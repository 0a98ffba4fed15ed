package services

import (
	"context"
	"errors"
	"testing"

	"civicpulse-be/models"
	"civicpulse-be/store"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:       "Asha Verma",
		Email:      "asha.verma@city.gov",
		Password:   "secret123",
		Ward:       "Ward 1",
		Phone:      "9876543210",
		Department: "Sanitation",
	}
}

func TestRegisterDefaults(t *testing.T) {
	svc := NewCredentialService(store.NewMemoryStore())

	in := validRegisterInput()
	in.Email = "  Asha.Verma@City.GOV "
	official, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if official.Email != "asha.verma@city.gov" {
		t.Errorf("email not normalized: %q", official.Email)
	}
	if official.Role != models.RoleWardOfficer {
		t.Errorf("default role = %q, want ward-officer", official.Role)
	}
	if !official.IsActive {
		t.Error("new official should be active")
	}
	if official.PerformanceScore != 0 || official.TotalComplaints != 0 || official.ResolvedComplaints != 0 {
		t.Error("new official should start with zeroed performance fields")
	}
	if official.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !official.ComparePassword("secret123") {
		t.Error("stored hash does not verify the original password")
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := NewCredentialService(store.NewMemoryStore())

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	in := validRegisterInput()
	in.Email = "ASHA.VERMA@city.gov"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("second Register err = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewCredentialService(store.NewMemoryStore())

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"short password", func(in *RegisterInput) { in.Password = "abc12" }},
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"missing ward", func(in *RegisterInput) { in.Ward = "" }},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }},
		{"missing department", func(in *RegisterInput) { in.Department = "" }},
		{"bad role", func(in *RegisterInput) { in.Role = "mayor" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput()
			tc.mutate(&in)
			if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewCredentialService(st)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	inactive := &models.Official{
		Name: "Gone Officer", Email: "gone@city.gov", Password: "secret123",
		Role: models.RoleWardOfficer, Ward: "Ward 9", Phone: "1", Department: "Roads",
		IsActive: false,
	}
	if err := inactive.HashPassword(); err != nil {
		t.Fatal(err)
	}
	if err := st.InsertOfficial(context.Background(), inactive); err != nil {
		t.Fatal(err)
	}

	official, err := svc.Verify(context.Background(), "Asha.Verma@city.gov", "secret123")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if official.Email != "asha.verma@city.gov" {
		t.Errorf("unexpected official %q", official.Email)
	}

	// Unknown email, inactive official and wrong password must all fail with
	// the same signal.
	failures := []struct {
		name, email, password string
	}{
		{"unknown email", "nobody@city.gov", "secret123"},
		{"inactive official", "gone@city.gov", "secret123"},
		{"wrong password", "asha.verma@city.gov", "wrong-pass"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Verify(context.Background(), tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
