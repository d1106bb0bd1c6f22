package models

import (
	"database/sql"
	"time"
)

type ActivityLog struct {
	ID          int64         `db:"id"`
	AccountID   int64         `db:"account_id"`
	ActorID     sql.NullInt64 `db:"actor_id"`
	Description string        `db:"description"`
	CreatedAt   time.Time     `db:"created_at"`
}
