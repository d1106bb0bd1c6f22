package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cradoe/banking-api/internal/mocks"
	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/security"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Sup3r$ecretPass"

type fixture struct {
	svc      *Service
	accounts *mocks.MemoryAccountRepo
	activity *mocks.MemoryActivityRepo
	blobs    *mocks.MockBlobStore
	events   *mocks.EventRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	passwords, err := security.NewPasswordHasher(security.PasswordConfig{Cost: bcrypt.MinCost})
	require.NoError(t, err)

	tokens, err := security.NewTokenIssuer(security.TokenConfig{
		SecretKey: "test_secret",
		Issuer:    "http://localhost",
		Expiry:    30 * time.Minute,
	})
	require.NoError(t, err)

	f := &fixture{
		accounts: mocks.NewMemoryAccountRepo(),
		activity: &mocks.MemoryActivityRepo{},
		blobs:    new(mocks.MockBlobStore),
		events:   &mocks.EventRecorder{},
	}

	f.svc = New(Dependencies{
		Accounts:    f.accounts,
		Activity:    f.activity,
		Passwords:   passwords,
		Tokens:      tokens,
		Identifiers: security.NewIdentifierHasher("test_kyc_key"),
		Blobs:       f.blobs,
		Events:      f.events,
		Background:  mocks.SyncRunner{},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func registerInput(email, phone string) RegisterInput {
	return RegisterInput{
		Profile: Profile{
			FirstName:        "Asha",
			LastName:         "Kumar",
			Email:            email,
			PhoneNumber:      phone,
			PermanentAddress: "12 MG Road, Bengaluru",
			DateOfBirth:      "1990-04-12",
		},
		Password: testPassword,
	}
}

func (f *fixture) register(t *testing.T, email, phone string) *models.Account {
	t.Helper()

	account, err := f.svc.Register(context.Background(), registerInput(email, phone))
	require.NoError(t, err)

	return account
}

func (f *fixture) admin(t *testing.T) *models.Account {
	t.Helper()

	account := f.register(t, "admin@example.com", "9000000000")
	admin, err := f.accounts.Update(context.Background(), account.ID, func(a *models.Account) error {
		a.Role = models.RoleAdmin
		return nil
	})
	require.NoError(t, err)

	return admin
}

func (f *fixture) stored(t *testing.T, id int64) models.Account {
	t.Helper()

	account, ok := f.accounts.Stored(id)
	require.True(t, ok)

	return account
}
