package service

import "github.com/cradoe/banking-api/internal/models"

// MaxFailedAttempts is the number of consecutive wrong passwords that blocks an account.
const MaxFailedAttempts = 3

// RecordFailedLogin counts a wrong password against a normal account and blocks it on
// reaching MaxFailedAttempts. It reports whether this call blocked the account.
// A blocked account is left untouched.
func RecordFailedLogin(account *models.Account) bool {
	if account.IsBlocked {
		return false
	}

	account.FailedAttempts++
	if account.FailedAttempts >= MaxFailedAttempts {
		account.FailedAttempts = MaxFailedAttempts
		account.IsBlocked = true
		return true
	}

	return false
}

func RecordSuccessfulLogin(account *models.Account) {
	account.FailedAttempts = 0
}

// Unblock is the only way out of the blocked state.
func Unblock(account *models.Account) {
	account.IsBlocked = false
	account.FailedAttempts = 0
}
