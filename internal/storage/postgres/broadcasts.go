package postgres

import (
	"context"
	"fmt"
)

// CreateBroadcast records a broadcast run and returns its id.
func (s *Storage) CreateBroadcast(ctx context.Context, adminID int64, text string) (int64, error) {
	const query = `
		INSERT INTO broadcasts (admin_id, text)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := s.db.GetContext(ctx, &id, query, adminID, text); err != nil {
		return 0, fmt.Errorf("create broadcast: %w", err)
	}
	return id, nil
}

// FinishBroadcast stores the delivery counters once the run completes.
func (s *Storage) FinishBroadcast(ctx context.Context, id int64, success, failed int64) error {
	const query = `
		UPDATE broadcasts
		SET success_count = $2, failed_count = $3, finished_at = NOW()
		WHERE id = $1
	`
	if _, err := s.db.ExecContext(ctx, query, id, success, failed); err != nil {
		return fmt.Errorf("finish broadcast %d: %w", id, err)
	}
	return nil
}
