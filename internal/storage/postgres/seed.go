package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/coursebot/core/logger"
)

// SeedInfoPages inserts empty about/support pages so the menu buttons have
// rows to read. Existing content is never touched.
func SeedInfoPages(ctx context.Context, db *sqlx.DB) error {
	const query = `
		INSERT INTO info_pages (key, content_qr, content_uz)
		VALUES ('about', '', ''), ('support', '', '')
		ON CONFLICT (key) DO NOTHING
	`
	res, err := db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed info pages: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logger.LogEvent(ctx, logger.DB, slog.LevelInfo, "seed.info_pages",
			slog.Int64("inserted", n))
	}
	return nil
}
