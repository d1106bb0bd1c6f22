package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock

	mu       sync.Mutex
	lastBody []byte
}

// Put drains r so callers see the same reader behaviour as a real store.
func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.lastBody = body
	m.mu.Unlock()

	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

// LastBody returns the bytes read by the most recent Put.
func (m *MockBlobStore) LastBody() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastBody
}
