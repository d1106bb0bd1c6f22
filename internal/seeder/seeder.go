package seeders

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/repository"
	"github.com/cradoe/banking-api/internal/security"
)

const defaultTimeout = 5 * time.Second

type AdminAccount struct {
	Email       string
	Password    string
	PhoneNumber string
}

type Seeder struct {
	Accounts  repository.AccountRepository
	Passwords *security.PasswordHasher
	Logger    *slog.Logger
}

func New(accounts repository.AccountRepository, passwords *security.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{
		Accounts:  accounts,
		Passwords: passwords,
		Logger:    logger,
	}
}

// Run seeds the bootstrap admin when its credentials are configured.
func (seeder *Seeder) Run(admin AdminAccount) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	return seeder.seedAdmin(admin)
}

// seedAdmin creates the first admin account. Registration only ever creates users,
// so without it nobody could unblock accounts or adjudicate KYC.
func (seeder *Seeder) seedAdmin(admin AdminAccount) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(admin.Email))

	_, found, err := seeder.Accounts.GetActiveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	hash, err := seeder.Passwords.Hash(admin.Password)
	if err != nil {
		return err
	}

	_, err = seeder.Accounts.Insert(ctx, &models.Account{
		FirstName:        "System",
		LastName:         "Administrator",
		Email:            email,
		PhoneNumber:      admin.PhoneNumber,
		PermanentAddress: "Head office",
		DateOfBirth:      time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		PasswordHash:     hash,
		Role:             models.RoleAdmin,
		IsActive:         true,
		KYCStatus:        models.KYCStatusNotSubmitted,
	})

	var dup *repository.DuplicateError
	if errors.As(err, &dup) {
		seeder.Logger.Warn("admin account not seeded", "field", dup.Field, "reason", "already taken")
		return nil
	}
	if err != nil {
		return err
	}

	seeder.Logger.Info("admin account seeded", "email", email)
	return nil
}
