package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/repository"
	"github.com/cradoe/banking-api/internal/security"
	"github.com/cradoe/banking-api/internal/validator"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

const (
	KYCDecisionApproved = models.KYCStatusApproved
	KYCDecisionRejected = models.KYCStatusRejected
)

// KYCSubmission holds the raw national identifiers. They are hashed and masked on
// submission and never stored or logged as given.
type KYCSubmission struct {
	Aadhaar      string
	Pan          string
	DocumentName string
	Document     io.Reader
}

var rgxUnsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

var allowedDocumentTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// sniffDocument detects the content type from the first bytes of r and returns a reader
// that still yields the whole stream.
func sniffDocument(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, 512)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]

	return io.MultiReader(bytes.NewReader(head), r), http.DetectContentType(head), nil
}

func documentKey(accountID int64, name string) string {
	name = rgxUnsafeFileChars.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." || name == "_" {
		name = "document"
	}

	return fmt.Sprintf("kyc/%d/%s_%s", accountID, uuid.NewString(), name)
}

// SubmitKYC records identifiers and a supporting document and moves the account to pending.
// The document is stored before the row is touched and removed again if the row update fails,
// so a pending record always points at a complete document.
func (s *Service) SubmitKYC(ctx context.Context, actor *models.Account, submission KYCSubmission) (*models.Account, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	if actor.KYCStatus == models.KYCStatusApproved {
		return nil, ErrKYCAlreadyApproved
	}

	aadhaar := security.NormalizeAadhaar(submission.Aadhaar)
	pan := security.NormalizePan(submission.Pan)

	var v validator.Validator

	v.Check(validator.Matches(aadhaar, security.RgxAadhaar), "Aadhaar number must be exactly 12 digits")
	v.Check(validator.Matches(pan, security.RgxPan), "PAN must be 5 letters, 4 digits and 1 letter")
	if s.cfg.PanSurnameCheck && security.RgxPan.MatchString(pan) {
		v.Check(security.PanMatchesSurname(pan, actor.LastName), "PAN does not match the account holder's surname")
	}

	document := submission.Document
	if document == nil {
		v.AddError("KYC document is required")
	} else {
		var contentType string
		var err error

		document, contentType, err = sniffDocument(document)
		if err != nil {
			return nil, err
		}
		v.Check(slices.Contains(allowedDocumentTypes, contentType), "KYC document must be a PDF, JPEG or PNG file")
	}

	if v.HasErrors() {
		return nil, &ValidationError{Errors: v.Errors}
	}

	aadhaarHash, aadhaarMasked := s.identifiers.Hash(aadhaar), security.MaskAadhaar(aadhaar)
	panHash, panMasked := s.identifiers.Hash(pan), security.MaskPan(pan)

	ref, err := s.blobs.Put(ctx, documentKey(actor.ID, submission.DocumentName), document)
	if err != nil {
		return nil, err
	}

	var previous string

	account, err := s.accounts.Update(ctx, actor.ID, func(a *models.Account) error {
		if a.KYCStatus == models.KYCStatusApproved {
			return ErrKYCAlreadyApproved
		}

		previous = a.KYCDocumentPath.String

		a.AadhaarHash = nullString(aadhaarHash)
		a.AadhaarMasked = nullString(aadhaarMasked)
		a.PanHash = nullString(panHash)
		a.PanMasked = nullString(panMasked)
		a.KYCDocumentPath = nullString(ref)
		a.KYCStatus = models.KYCStatusPending
		return nil
	})
	if err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), ref); delErr != nil {
			s.logger.Error("failed to remove orphaned kyc document", "account_id", actor.ID, "error", delErr)
		}
		return nil, storeError(err)
	}

	if previous != "" && previous != ref {
		s.background.BackgroundTask(func() error {
			return s.blobs.Delete(context.Background(), previous)
		})
	}

	s.logger.Info("kyc submitted", "account_id", account.ID, "aadhaar", aadhaarMasked, "pan", panMasked, "document", ref)
	s.audit(account.ID, account.ID, repository.ActivityLogKYCSubmittedDescription)
	s.publish(models.AccountEventKYCSubmitted, account)

	return account, nil
}

// AdjudicateKYC records an admin decision on a pending submission.
func (s *Service) AdjudicateKYC(ctx context.Context, actor *models.Account, accountID int64, decision string) (*models.Account, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	if decision != KYCDecisionApproved && decision != KYCDecisionRejected {
		return nil, ErrInvalidDecision
	}

	account, err := s.accounts.Update(ctx, accountID, func(a *models.Account) error {
		if a.KYCStatus != models.KYCStatusPending {
			return ErrNotPending
		}

		if !a.KYCDocumentPath.Valid || a.KYCDocumentPath.String == "" {
			s.logger.Error("pending kyc record without a document", "account_id", a.ID, "invariant", true)
			return ErrMissingDocument
		}

		a.KYCStatus = decision
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	description := repository.ActivityLogKYCApprovedDescription
	if decision == KYCDecisionRejected {
		description = repository.ActivityLogKYCRejectedDescription
	}

	s.audit(account.ID, actor.ID, description)
	s.publish(models.AccountEventKYCDecided, account)

	return account, nil
}
