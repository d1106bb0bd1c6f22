package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// AccountRepository is the record store for accounts.
// Lookups only ever return active accounts; deactivated rows are kept for uniqueness and audit.
type AccountRepository interface {
	Insert(ctx context.Context, account *models.Account) (int64, error)
	GetActive(ctx context.Context, id int64) (*models.Account, bool, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.Account, bool, error)
	ListActive(ctx context.Context, limit, offset int) ([]models.Account, error)
	// Update locks the row, applies fn and writes the result back in one transaction.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, id int64, fn func(account *models.Account) error) (*models.Account, error)
}

const accountColumns = `
	id, username, first_name, last_name, email, phone_number, permanent_address, date_of_birth,
	password_hash, role, is_active, is_blocked, failed_attempts, kyc_status,
	aadhaar_hash, aadhaar_masked, pan_hash, pan_masked, kyc_document_path, created_at, updated_at`

type AccountRepositoryImpl struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (repo *AccountRepositoryImpl) Insert(ctx context.Context, account *models.Account) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	query := `
		INSERT INTO accounts (username, first_name, last_name, email, phone_number, permanent_address,
			date_of_birth, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := repo.db.QueryRowContext(ctx, query,
		account.Username,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PhoneNumber,
		account.PermanentAddress,
		account.DateOfBirth,
		account.PasswordHash,
		account.Role,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err)
	}

	return id, nil
}

func (repo *AccountRepositoryImpl) GetActive(ctx context.Context, id int64) (*models.Account, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var account models.Account

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND is_active = TRUE`

	err := repo.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &account, true, nil
}

func (repo *AccountRepositoryImpl) GetActiveByEmail(ctx context.Context, email string) (*models.Account, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var account models.Account

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND is_active = TRUE`

	err := repo.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &account, true, nil
}

func (repo *AccountRepositoryImpl) ListActive(ctx context.Context, limit, offset int) ([]models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	accounts := []models.Account{}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE is_active = TRUE ORDER BY id LIMIT $1 OFFSET $2`

	err := repo.db.SelectContext(ctx, &accounts, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (repo *AccountRepositoryImpl) Update(ctx context.Context, id int64, fn func(account *models.Account) error) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	// a no-op once the transaction has been committed
	defer tx.Rollback()

	var account models.Account

	// FOR UPDATE serializes concurrent writers on the same account until commit
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND is_active = TRUE FOR UPDATE`

	err = tx.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := fn(&account); err != nil {
		return nil, err
	}

	account.UpdatedAt = time.Now()

	update := `
		UPDATE accounts SET
			username = :username,
			first_name = :first_name,
			last_name = :last_name,
			email = :email,
			phone_number = :phone_number,
			permanent_address = :permanent_address,
			date_of_birth = :date_of_birth,
			password_hash = :password_hash,
			role = :role,
			is_active = :is_active,
			is_blocked = :is_blocked,
			failed_attempts = :failed_attempts,
			kyc_status = :kyc_status,
			aadhaar_hash = :aadhaar_hash,
			aadhaar_masked = :aadhaar_masked,
			pan_hash = :pan_hash,
			pan_masked = :pan_masked,
			kyc_document_path = :kyc_document_path,
			updated_at = :updated_at
		WHERE id = :id`

	if _, err := tx.NamedExecContext(ctx, update, &account); err != nil {
		return nil, translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &account, nil
}
