package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/repository"
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *models.Account
}

// loginAttempt carries one login through the guard chain.
type loginAttempt struct {
	account  *models.Account
	password string
	verify   func(password, hash string) bool

	// err is what the caller gets back. Counter changes are persisted even when it is set.
	err     error
	changed bool
	locked  bool
}

// loginGuard returns false to stop the chain.
type loginGuard func(attempt *loginAttempt) bool

// loginGuards run strictly in this order. A blocked account is rejected before its
// password is looked at, so the response never reveals whether the password was right.
var loginGuards = []loginGuard{
	requireActiveAccount,
	requireNotBlocked,
	requireCorrectPassword,
}

func requireActiveAccount(attempt *loginAttempt) bool {
	if attempt.account == nil || !attempt.account.IsActive {
		attempt.err = ErrInvalidCredentials
		return false
	}
	return true
}

func requireNotBlocked(attempt *loginAttempt) bool {
	if attempt.account.IsBlocked {
		attempt.err = ErrAccountBlocked
		return false
	}
	return true
}

func requireCorrectPassword(attempt *loginAttempt) bool {
	if attempt.verify(attempt.password, attempt.account.PasswordHash) {
		attempt.changed = attempt.account.FailedAttempts != 0
		RecordSuccessfulLogin(attempt.account)
		return true
	}

	attempt.changed = true
	if RecordFailedLogin(attempt.account) {
		attempt.locked = true
		attempt.err = ErrAccountBlocked
	} else {
		attempt.err = ErrInvalidCredentials
	}
	return false
}

func runLoginGuards(attempt *loginAttempt) {
	for _, guard := range loginGuards {
		if !guard(attempt) {
			return
		}
	}
}

var errLoginUnchanged = errors.New("login left the account unchanged")

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	found, ok, err := s.accounts.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.passwords.VerifyDummy(password)
		return nil, ErrInvalidCredentials
	}

	attempt := &loginAttempt{}

	account, err := s.accounts.Update(ctx, found.ID, func(a *models.Account) error {
		*attempt = loginAttempt{account: a, password: password, verify: s.passwords.Verify}
		runLoginGuards(attempt)

		if !attempt.changed {
			return errLoginUnchanged
		}
		return nil
	})

	switch {
	case errors.Is(err, errLoginUnchanged):
		account = attempt.account
	case errors.Is(err, repository.ErrRecordNotFound):
		// deactivated between the lookup and the row lock
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if attempt.err != nil {
		s.auditRejectedLogin(account, attempt)
		return nil, attempt.err
	}

	token, expiresAt, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	s.audit(account.ID, 0, repository.ActivityLogLoginDescription)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

func (s *Service) auditRejectedLogin(account *models.Account, attempt *loginAttempt) {
	if !attempt.changed {
		return
	}

	s.audit(account.ID, 0, repository.ActivityLogFailedLoginDescription)

	if attempt.locked {
		s.logger.Warn("account locked after consecutive failed logins", "account_id", account.ID)
		s.audit(account.ID, 0, repository.ActivityLogLockedAccountDescription)
		s.publish(models.AccountEventLocked, account)
	}
}
