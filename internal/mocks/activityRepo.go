package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cradoe/banking-api/internal/models"
)

type MemoryActivityRepo struct {
	mu   sync.Mutex
	logs []models.ActivityLog
}

func (m *MemoryActivityRepo) Insert(ctx context.Context, log *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := *log
	row.ID = int64(len(m.logs) + 1)
	row.CreatedAt = time.Now()
	m.logs = append(m.logs, row)

	return nil
}

// ListForAccount returns the newest entries first.
func (m *MemoryActivityRepo) ListForAccount(ctx context.Context, accountID int64, limit int) ([]models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logs := []models.ActivityLog{}
	for i := len(m.logs) - 1; i >= 0 && len(logs) < limit; i-- {
		if m.logs[i].AccountID == accountID {
			logs = append(logs, m.logs[i])
		}
	}

	return logs, nil
}

// Descriptions lists the descriptions recorded for accountID, oldest first.
func (m *MemoryActivityRepo) Descriptions(accountID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var descriptions []string
	for _, log := range m.logs {
		if log.AccountID == accountID {
			descriptions = append(descriptions, log.Description)
		}
	}

	return descriptions
}
