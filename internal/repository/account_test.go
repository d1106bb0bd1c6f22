package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cradoe/banking-api/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func accountRow(mock sqlmock.Sqlmock, failedAttempts int, blocked bool) *sqlmock.Rows {
	return mock.NewRows([]string{"id", "email", "phone_number", "role", "is_active", "is_blocked", "failed_attempts", "kyc_status"}).
		AddRow(7, "ada@example.com", "9876543210", models.RoleUser, true, blocked, failedAttempts, models.KYCStatusNotSubmitted)
}

func TestAccountUpdate_CommitsMutation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1 AND is_active = TRUE FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(accountRow(mock, 1, false))
	mock.ExpectExec(`UPDATE accounts SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account, err := repo.Update(context.Background(), 7, func(a *models.Account) error {
		a.FailedAttempts++
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 2, account.FailedAttempts)
	require.False(t, account.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdate_RollsBackWhenMutationFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	errAbort := errors.New("abort")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1 AND is_active = TRUE FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(accountRow(mock, 0, false))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 7, func(a *models.Account) error {
		return errAbort
	})

	require.ErrorIs(t, err, errAbort)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdate_MissingAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1 AND is_active = TRUE FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 99, func(a *models.Account) error {
		t.Fatal("mutation must not run for a missing account")
		return nil
	})

	require.ErrorIs(t, err, ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountInsert_DuplicatePhoneNumber(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_phone_number_key"})

	_, err := repo.Insert(context.Background(), &models.Account{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "9876543210",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:        models.RoleUser,
	})

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "phone_number", dup.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGetActiveByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM accounts WHERE email = \$1 AND is_active = TRUE`).
		WithArgs("ghost@example.com").
		WillReturnRows(mock.NewRows([]string{"id"}))

	account, found, err := repo.GetActiveByEmail(context.Background(), "ghost@example.com")

	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, account)
}
