package security

import (
	"errors"
	"fmt"

	"github.com/cradoe/gopass"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("password must be between 1 and 72 bytes")

type PasswordConfig struct {
	// Cost is the bcrypt work factor.
	Cost int
}

// PasswordHasher is the credential store: it produces and verifies salted bcrypt digests.
// It never keeps or logs the plaintext it is given.
type PasswordHasher struct {
	cost  int
	dummy string
}

func NewPasswordHasher(cfg PasswordConfig) (*PasswordHasher, error) {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.Cost)
	}

	dummy, err := gopass.HashWithBcrypt("not-a-real-password", cfg.Cost)
	if err != nil {
		return nil, err
	}

	return &PasswordHasher{cost: cfg.Cost, dummy: dummy}, nil
}

// Strength returns the reasons the password is too weak, or nil.
func (h *PasswordHasher) Strength(password string) []string {
	_, problems := gopass.Validate(password)
	return problems
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := gopass.HashWithBcrypt(password, h.cost)
	if err != nil {
		if errors.Is(err, gopass.ErrEmptyPassword) || errors.Is(err, gopass.ErrPasswordTooLong) {
			return "", ErrInvalidPassword
		}
		return "", err
	}

	return hash, nil
}

// Verify reports a match only. A malformed stored hash is treated as a mismatch.
func (h *PasswordHasher) Verify(password, hash string) bool {
	match, err := gopass.CompareBcryptPasswordAndHash(password, hash)
	return err == nil && match
}

// VerifyDummy spends the same time as Verify against a throwaway hash.
// Used when there is no account to check so unknown emails are not distinguishable by timing.
func (h *PasswordHasher) VerifyDummy(password string) {
	_, _ = gopass.CompareBcryptPasswordAndHash(password, h.dummy)
}
