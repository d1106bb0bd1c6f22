package models

import (
	"database/sql"
	"time"
)

const (
	// RoleUser is assigned to every account created through registration.
	RoleUser = "user"

	// RoleAdmin grants access to account management and KYC adjudication.
	RoleAdmin = "admin"
)

const (
	KYCStatusNotSubmitted = "not_submitted"
	KYCStatusPending      = "pending"
	KYCStatusApproved     = "approved"
	KYCStatusRejected     = "rejected"
)

type Account struct {
	ID               int64          `db:"id"`
	Username         sql.NullString `db:"username"`
	FirstName        string         `db:"first_name"`
	LastName         string         `db:"last_name"`
	Email            string         `db:"email"`
	PhoneNumber      string         `db:"phone_number"`
	PermanentAddress string         `db:"permanent_address"`
	DateOfBirth      time.Time      `db:"date_of_birth"`
	PasswordHash     string         `db:"password_hash"`
	Role             string         `db:"role"`
	IsActive         bool           `db:"is_active"`
	IsBlocked        bool           `db:"is_blocked"`
	FailedAttempts   int            `db:"failed_attempts"`
	KYCStatus        string         `db:"kyc_status"`
	AadhaarHash      sql.NullString `db:"aadhaar_hash"`
	AadhaarMasked    sql.NullString `db:"aadhaar_masked"`
	PanHash          sql.NullString `db:"pan_hash"`
	PanMasked        sql.NullString `db:"pan_masked"`
	KYCDocumentPath  sql.NullString `db:"kyc_document_path"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
