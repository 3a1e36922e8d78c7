// Package receipts stores uploaded payment receipts on the local
// filesystem. Files land under <dir>/receipts/<chatID>/ with a timestamped
// name so repeated uploads from the same chat never collide within a second
// of each other.
package receipts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/m3rciful/coursebot/core/logger"
	"github.com/m3rciful/coursebot/internal/apperr"
)

// Store writes receipt files under a base directory and hands back the
// relative path recorded on the payment row.
type Store struct {
	baseDir string
	now     func() time.Time
}

// NewStore builds a Store rooted at baseDir. The directory is created
// lazily on first save.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

// Save streams the receipt body to disk and returns the path relative to
// the base directory. ext must include the leading dot.
func (s *Store) Save(ctx context.Context, chatID int64, ext string, body io.Reader) (string, error) {
	relDir := filepath.Join("receipts", fmt.Sprintf("%d", chatID))
	name := fmt.Sprintf("receipt_%d_%s%s", chatID, s.now().UTC().Format("20060102_150405"), ext)
	relPath := filepath.Join(relDir, name)

	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "error_payment_save", err)
	}

	absPath := filepath.Join(s.baseDir, relPath)
	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "error_payment_save", err)
	}

	written, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(absPath)
		return "", apperr.Wrap(apperr.KindInternal, "error_payment_save", err)
	}

	logger.LogEvent(ctx, logger.Receipts, slog.LevelDebug, "receipt.saved",
		slog.Int64("chat_id", chatID),
		slog.String("path", relPath),
		slog.Int64("size", written),
	)
	return relPath, nil
}

// Open returns a reader for a previously saved receipt.
func (s *Store) Open(relPath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.KindNotFound, "error_document_not_found", err)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "error_file_download", err)
	}
	return f, nil
}
