package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/repository"
)

// MemoryAccountRepo is an in-memory repository.AccountRepository. Update holds the
// store lock for the whole callback, which gives the same per-row serialization as
// SELECT ... FOR UPDATE.
type MemoryAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
}

func NewMemoryAccountRepo() *MemoryAccountRepo {
	return &MemoryAccountRepo{accounts: map[int64]models.Account{}}
}

// uniqueField names the first unique field of account already held by another row.
// Deactivated rows still hold their values, as they do in the database.
func (m *MemoryAccountRepo) uniqueField(account *models.Account) string {
	for id, other := range m.accounts {
		if id == account.ID {
			continue
		}
		switch {
		case other.Email == account.Email:
			return "email"
		case other.PhoneNumber == account.PhoneNumber:
			return "phone_number"
		case account.Username.Valid && other.Username.Valid && other.Username.String == account.Username.String:
			return "username"
		}
	}
	return ""
}

func (m *MemoryAccountRepo) Insert(ctx context.Context, account *models.Account) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := *account
	row.ID = 0
	if field := m.uniqueField(&row); field != "" {
		return 0, &repository.DuplicateError{Field: field}
	}

	m.nextID++
	row.ID = m.nextID
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	m.accounts[row.ID] = row

	return row.ID, nil
}

func (m *MemoryAccountRepo) GetActive(ctx context.Context, id int64) (*models.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.accounts[id]
	if !ok || !row.IsActive {
		return nil, false, nil
	}

	return &row, true, nil
}

func (m *MemoryAccountRepo) GetActiveByEmail(ctx context.Context, email string) (*models.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.accounts {
		if row.Email == email && row.IsActive {
			return &row, true, nil
		}
	}

	return nil, false, nil
}

func (m *MemoryAccountRepo) ListActive(ctx context.Context, limit, offset int) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := []models.Account{}
	for id := int64(1); id <= m.nextID; id++ {
		row, ok := m.accounts[id]
		if ok && row.IsActive {
			accounts = append(accounts, row)
		}
	}

	if offset >= len(accounts) {
		return []models.Account{}, nil
	}
	accounts = accounts[offset:]
	if limit < len(accounts) {
		accounts = accounts[:limit]
	}

	return accounts, nil
}

func (m *MemoryAccountRepo) Update(ctx context.Context, id int64, fn func(account *models.Account) error) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.accounts[id]
	if !ok || !row.IsActive {
		return nil, repository.ErrRecordNotFound
	}

	if err := fn(&row); err != nil {
		return nil, err
	}

	row.ID = id
	if field := m.uniqueField(&row); field != "" {
		return nil, &repository.DuplicateError{Field: field}
	}

	row.UpdatedAt = time.Now()
	m.accounts[id] = row

	return &row, nil
}

// Stored returns the row as persisted, including deactivated rows.
func (m *MemoryAccountRepo) Stored(id int64) (models.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.accounts[id]
	return row, ok
}
