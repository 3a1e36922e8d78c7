package receipts

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	s.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return s
}

func TestStoreSave(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.Save(context.Background(), 42, ".pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("receipts", "42", "receipt_42_20250314_092653.pdf"), rel)

	data, err := os.ReadFile(filepath.Join(s.baseDir, rel))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestStoreSaveRejectsDuplicatePath(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(context.Background(), 42, ".jpg", strings.NewReader("a"))
	require.NoError(t, err)

	// Frozen clock produces the same name, which must not overwrite.
	_, err = s.Save(context.Background(), 42, ".jpg", strings.NewReader("b"))
	require.Error(t, err)
}

func TestStoreOpen(t *testing.T) {
	s := newTestStore(t)

	rel, err := s.Save(context.Background(), 7, ".png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	rc, err := s.Open(rel)
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = s.Open(filepath.Join("receipts", "7", "missing.png"))
	require.Error(t, err)
}
