package handler

import (
	"time"

	"github.com/cradoe/banking-api/internal/models"
)

type kycView struct {
	Status            string  `json:"status"`
	AadhaarMasked     *string `json:"aadhaar_masked"`
	PanMasked         *string `json:"pan_masked"`
	DocumentSubmitted bool    `json:"document_submitted"`
}

// accountView is the public shape of an account. Hashes and document references stay server side.
type accountView struct {
	ID               int64     `json:"id"`
	Username         *string   `json:"username"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	PermanentAddress string    `json:"permanent_address"`
	DateOfBirth      string    `json:"date_of_birth"`
	Role             string    `json:"role"`
	IsActive         bool      `json:"is_active"`
	IsBlocked        bool      `json:"is_blocked"`
	FailedAttempts   int       `json:"failed_attempts"`
	KYC              kycView   `json:"kyc"`
	CreatedAt        time.Time `json:"created_at"`
}

func newKYCView(a *models.Account) kycView {
	view := kycView{
		Status:            a.KYCStatus,
		DocumentSubmitted: a.KYCDocumentPath.Valid,
	}
	if a.AadhaarMasked.Valid {
		view.AadhaarMasked = &a.AadhaarMasked.String
	}
	if a.PanMasked.Valid {
		view.PanMasked = &a.PanMasked.String
	}
	return view
}

func newAccountView(a *models.Account) accountView {
	view := accountView{
		ID:               a.ID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		PhoneNumber:      a.PhoneNumber,
		PermanentAddress: a.PermanentAddress,
		DateOfBirth:      a.DateOfBirth.Format("2006-01-02"),
		Role:             a.Role,
		IsActive:         a.IsActive,
		IsBlocked:        a.IsBlocked,
		FailedAttempts:   a.FailedAttempts,
		KYC:              newKYCView(a),
		CreatedAt:        a.CreatedAt,
	}
	if a.Username.Valid {
		view.Username = &a.Username.String
	}
	return view
}

type activityView struct {
	Description string    `json:"description"`
	ActorID     *int64    `json:"actor_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newActivityViews(logs []models.ActivityLog) []activityView {
	views := make([]activityView, 0, len(logs))
	for _, log := range logs {
		view := activityView{Description: log.Description, CreatedAt: log.CreatedAt}
		if log.ActorID.Valid {
			actor := log.ActorID.Int64
			view.ActorID = &actor
		}
		views = append(views, view)
	}
	return views
}
