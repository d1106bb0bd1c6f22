package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cradoe/banking-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("incorrect email/password")
	ErrAccountBlocked     = errors.New("account has been locked, please contact support")
	ErrUnauthenticated    = errors.New("invalid or missing authentication token")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrNotFound           = errors.New("account not found")

	ErrKYCAlreadyApproved = errors.New("kyc has already been approved")
	ErrNotPending         = errors.New("kyc is not pending review")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")

	// ErrMissingDocument means a pending KYC record has no document reference.
	// Submission never produces such a record, so seeing it points at a bug or manual data change.
	ErrMissingDocument = errors.New("pending kyc record has no document")
)

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// DuplicateError names the unique field that is already taken.
type DuplicateError struct {
	Field string
}

var duplicateFieldLabels = map[string]string{
	"email":        "Email",
	"phone_number": "Phone number",
	"username":     "Username",
}

func (e *DuplicateError) Error() string {
	label, ok := duplicateFieldLabels[e.Field]
	if !ok {
		label = "Account"
	}
	return fmt.Sprintf("%s already exists", label)
}

func storeError(err error) error {
	var dup *repository.DuplicateError

	switch {
	case errors.As(err, &dup):
		return &DuplicateError{Field: dup.Field}
	case errors.Is(err, repository.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
