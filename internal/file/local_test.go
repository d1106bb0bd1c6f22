package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestLocalStore_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	ref, err := store.Put(context.Background(), "kyc/7/abc_id.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	require.Equal(t, "kyc/7/abc_id.pdf", ref)

	content, err := os.ReadFile(filepath.Join(root, "kyc", "7", "abc_id.pdf"))
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(content))

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(root, "kyc", "7", "abc_id.pdf"))
	require.True(t, os.IsNotExist(err))

	// deleting twice is fine
	require.NoError(t, store.Delete(context.Background(), ref))
}

func TestLocalStore_FailedWriteLeavesNothing(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "kyc/7/abc_id.pdf", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "kyc", "7"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLocalStore_CancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "kyc/7/abc_id.pdf", strings.NewReader("data"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../outside.pdf", strings.NewReader("data"))
	require.Error(t, err)

	_, err = store.Put(context.Background(), "/etc/passwd", strings.NewReader("data"))
	require.Error(t, err)
}
