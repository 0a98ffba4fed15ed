package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"civicpulse-be/models"
	"civicpulse-be/store"
)

const minPasswordLength = 6

// CredentialService owns official accounts: registration and login
// verification.
type CredentialService struct {
	store store.Store
}

func NewCredentialService(st store.Store) *CredentialService {
	return &CredentialService{store: st}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Ward       string
	Phone      string
	Department string
	Role       models.Role
}

// Register creates a new official with zeroed performance counters. Emails
// are stored lowercase and trimmed; uniqueness is case-insensitive.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*models.Official, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || email == "" || in.Ward == "" || in.Phone == "" || in.Department == "" {
		return nil, fmt.Errorf("%w: name, email, ward, phone and department are required", ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = models.RoleWardOfficer
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}

	if _, err := s.store.OfficialByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	official := &models.Official{
		Name:       in.Name,
		Email:      email,
		Password:   in.Password,
		Role:       role,
		Ward:       in.Ward,
		Phone:      in.Phone,
		Department: in.Department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := official.HashPassword(); err != nil {
		return nil, err
	}

	// The unique email index is the final arbiter if two registrations race.
	if err := s.store.InsertOfficial(ctx, official); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return official, nil
}

// Verify checks a login attempt. Unknown email, inactive account and wrong
// password all fail identically so that nothing is leaked about which it was.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (*models.Official, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	official, err := s.store.OfficialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !official.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !official.ComparePassword(password) {
		return nil, ErrInvalidCredentials
	}
	return official, nil
}
