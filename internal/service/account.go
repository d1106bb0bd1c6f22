package service

import (
	"context"
	"errors"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/repository"
	"github.com/cradoe/banking-api/internal/security"
	"github.com/cradoe/banking-api/internal/validator"
)

// Register creates a user account. Uniqueness of email, phone number and username is
// enforced by the record store and surfaces as *DuplicateError naming the field.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	normalizeProfile(&input.Profile)

	var v validator.Validator

	checkName(&v, input.FirstName, "First name")
	checkName(&v, input.LastName, "Last name")
	checkEmail(&v, input.Email)
	checkPhoneNumber(&v, input.PhoneNumber)
	checkAddress(&v, input.PermanentAddress)
	checkUsername(&v, input.Username)
	dob := checkDateOfBirth(&v, input.DateOfBirth, s.now())
	s.checkPassword(&v, input.Password)

	if v.HasErrors() {
		return nil, &ValidationError{Errors: v.Errors}
	}

	hash, err := s.passwords.Hash(input.Password)
	if errors.Is(err, security.ErrInvalidPassword) {
		return nil, &ValidationError{Errors: []string{err.Error()}}
	}
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:         nullString(input.Username),
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		PhoneNumber:      input.PhoneNumber,
		PermanentAddress: input.PermanentAddress,
		DateOfBirth:      dob,
		PasswordHash:     hash,
		Role:             models.RoleUser,
		IsActive:         true,
		KYCStatus:        models.KYCStatusNotSubmitted,
	}

	id, err := s.accounts.Insert(ctx, account)
	if err != nil {
		return nil, storeError(err)
	}
	account.ID = id

	s.audit(id, 0, repository.ActivityLogRegistrationDescription)

	return account, nil
}

// UpdateSelf changes the caller's own profile. Role, block state and KYC fields are out of reach.
func (s *Service) UpdateSelf(ctx context.Context, actor *models.Account, update ProfileUpdate) (*models.Account, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	patch, err := s.profilePatch(update, false)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Update(ctx, actor.ID, func(a *models.Account) error {
		patch(a)
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.audit(account.ID, account.ID, repository.ActivityLogProfileUpdateDescription)

	return account, nil
}

func (s *Service) AdminListAccounts(ctx context.Context, actor *models.Account, limit, offset int) ([]models.Account, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	return s.accounts.ListActive(ctx, limit, offset)
}

func (s *Service) AdminUpdateAccount(ctx context.Context, actor *models.Account, accountID int64, update ProfileUpdate) (*models.Account, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	patch, err := s.profilePatch(update, true)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Update(ctx, accountID, func(a *models.Account) error {
		patch(a)
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.audit(account.ID, actor.ID, repository.ActivityLogAdminUpdateDescription)

	return account, nil
}

// AdminDeactivate soft-deletes an account. The row is kept and still holds its unique fields.
func (s *Service) AdminDeactivate(ctx context.Context, actor *models.Account, accountID int64) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}

	if actor.ID == accountID {
		return &ValidationError{Errors: []string{"You cannot deactivate your own account"}}
	}

	_, err := s.accounts.Update(ctx, accountID, func(a *models.Account) error {
		a.IsActive = false
		return nil
	})
	if err != nil {
		return storeError(err)
	}

	s.audit(accountID, actor.ID, repository.ActivityLogDeactivatedDescription)

	return nil
}

func (s *Service) AdminUnblock(ctx context.Context, actor *models.Account, accountID int64) (*models.Account, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.accounts.Update(ctx, accountID, func(a *models.Account) error {
		Unblock(a)
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.audit(accountID, actor.ID, repository.ActivityLogUnblockedDescription)

	return account, nil
}

func (s *Service) AdminAccountActivity(ctx context.Context, actor *models.Account, accountID int64, limit int) ([]models.ActivityLog, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	_, found, err := s.accounts.GetActive(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	return s.activity.ListForAccount(ctx, accountID, limit)
}
