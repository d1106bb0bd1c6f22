package models

import "time"

const (
	AccountEventLocked       = "account.locked"
	AccountEventKYCSubmitted = "kyc.submitted"
	AccountEventKYCDecided   = "kyc.decided"
)

// AccountEvent is published to the account event stream.
// It never carries national identifiers, only the account holder's contact details.
type AccountEvent struct {
	Type       string    `json:"type"`
	AccountID  int64     `json:"account_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	KYCStatus  string    `json:"kyc_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
