// Every security-relevant action on an account is written to activity_logs.
// This is the audit trail for lockouts, unblocks, deactivations and KYC decisions.
package repository

import (
	"context"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/jmoiron/sqlx"
)

const (
	ActivityLogRegistrationDescription  = "Account registration"
	ActivityLogLoginDescription         = "Successful login"
	ActivityLogFailedLoginDescription   = "Failed login attempt"
	ActivityLogLockedAccountDescription = "Account locked after consecutive failed logins"
	ActivityLogUnblockedDescription     = "Account unblocked by admin"
	ActivityLogProfileUpdateDescription = "Profile updated"
	ActivityLogAdminUpdateDescription   = "Profile updated by admin"
	ActivityLogDeactivatedDescription   = "Account deactivated by admin"
	ActivityLogKYCSubmittedDescription  = "KYC documents submitted"
	ActivityLogKYCApprovedDescription   = "KYC approved"
	ActivityLogKYCRejectedDescription   = "KYC rejected"
)

type ActivityRepository interface {
	Insert(ctx context.Context, log *models.ActivityLog) error
	ListForAccount(ctx context.Context, accountID int64, limit int) ([]models.ActivityLog, error)
}

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(ctx context.Context, log *models.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO activity_logs (account_id, actor_id, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return repo.db.QueryRowxContext(ctx, query, log.AccountID, log.ActorID, log.Description).
		Scan(&log.ID, &log.CreatedAt)
}

// ListForAccount returns the most recent entries first.
func (repo *ActivityRepositoryImpl) ListForAccount(ctx context.Context, accountID int64, limit int) ([]models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	logs := []models.ActivityLog{}

	query := `
		SELECT id, account_id, actor_id, description, created_at
		FROM activity_logs
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := repo.db.SelectContext(ctx, &logs, query, accountID, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
