package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

// UpsertUser inserts the user keyed by chat id or refreshes the profile
// fields Telegram may have changed since last contact. The stored locale and
// phone survive the upsert.
func (s *Storage) UpsertUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	const query = `
		INSERT INTO users (chat_id, username, first_name, last_name, locale, is_active, last_activity)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		ON CONFLICT (chat_id) DO UPDATE SET
			username      = EXCLUDED.username,
			first_name    = EXCLUDED.first_name,
			last_name     = EXCLUDED.last_name,
			is_active     = TRUE,
			last_activity = NOW(),
			updated_at    = NOW()
		RETURNING id, chat_id, username, first_name, last_name, phone, locale,
			is_active, is_blocked, created_at, updated_at, last_activity
	`

	var stored domain.User
	err := s.db.GetContext(ctx, &stored, query,
		u.ChatID, u.Username, u.FirstName, u.LastName, string(u.Locale))
	if err != nil {
		return nil, fmt.Errorf("upsert user %d: %w", u.ChatID, err)
	}
	return &stored, nil
}

// GetUserByChatID fetches a user by Telegram chat id.
func (s *Storage) GetUserByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	const query = `
		SELECT id, chat_id, username, first_name, last_name, phone, locale,
			is_active, is_blocked, created_at, updated_at, last_activity
		FROM users
		WHERE chat_id = $1
	`

	var u domain.User
	if err := s.db.GetContext(ctx, &u, query, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.KindNotFound, "error_start_command", err)
		}
		return nil, fmt.Errorf("get user %d: %w", chatID, err)
	}
	return &u, nil
}

// SetUserLocale persists the chosen interface language.
func (s *Storage) SetUserLocale(ctx context.Context, chatID int64, loc domain.Locale) error {
	const query = `UPDATE users SET locale = $2, updated_at = NOW() WHERE chat_id = $1`
	if _, err := s.db.ExecContext(ctx, query, chatID, string(loc)); err != nil {
		return fmt.Errorf("set locale for %d: %w", chatID, err)
	}
	return nil
}

// SetUserPhone stores the shared contact number.
func (s *Storage) SetUserPhone(ctx context.Context, chatID int64, phone string) error {
	const query = `UPDATE users SET phone = $2, updated_at = NOW() WHERE chat_id = $1`
	if _, err := s.db.ExecContext(ctx, query, chatID, phone); err != nil {
		return fmt.Errorf("set phone for %d: %w", chatID, err)
	}
	return nil
}

// TouchUser bumps last_activity for an incoming update.
func (s *Storage) TouchUser(ctx context.Context, chatID int64) error {
	const query = `UPDATE users SET last_activity = NOW() WHERE chat_id = $1`
	if _, err := s.db.ExecContext(ctx, query, chatID); err != nil {
		return fmt.Errorf("touch user %d: %w", chatID, err)
	}
	return nil
}

// SetUserBlocked marks a user as having blocked the bot. Broadcast skips
// blocked users on later runs.
func (s *Storage) SetUserBlocked(ctx context.Context, chatID int64, blocked bool) error {
	const query = `UPDATE users SET is_blocked = $2, updated_at = NOW() WHERE chat_id = $1`
	if _, err := s.db.ExecContext(ctx, query, chatID, blocked); err != nil {
		return fmt.Errorf("set blocked for %d: %w", chatID, err)
	}
	return nil
}

// ListBroadcastTargets returns active, unblocked users ordered by id.
func (s *Storage) ListBroadcastTargets(ctx context.Context) ([]domain.User, error) {
	const query = `
		SELECT id, chat_id, username, first_name, last_name, phone, locale,
			is_active, is_blocked, created_at, updated_at, last_activity
		FROM users
		WHERE is_active AND NOT is_blocked
		ORDER BY id
	`

	var users []domain.User
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list broadcast targets: %w", err)
	}
	return users, nil
}
