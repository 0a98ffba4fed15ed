package services

import "errors"

// Error taxonomy surfaced to the routing layer. Controllers map each kind to
// an HTTP status; anything outside this list is logged and reported as a
// generic internal failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("official with this email already exists")
	ErrDuplicateReview    = errors.New("you have already reviewed this complaint")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotPublic          = errors.New("complaint is not yet public for review")
	ErrNoOfficialAssigned = errors.New("no official assigned to this complaint")
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
)
