// Package users manages registration, language choice and contact capture
// for Telegram users.
package users

import (
	"context"
	"log/slog"

	"github.com/m3rciful/coursebot/core/logger"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	UpsertUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUserByChatID(ctx context.Context, chatID int64) (*domain.User, error)
	SetUserLocale(ctx context.Context, chatID int64, loc domain.Locale) error
	SetUserPhone(ctx context.Context, chatID int64, phone string) error
	TouchUser(ctx context.Context, chatID int64) error
}

// Service wraps user persistence with the storefront's rules.
type Service struct {
	store Store
}

// New builds the users service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Profile carries the mutable fields Telegram reports about a user.
type Profile struct {
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

// Register upserts the user on /start and returns the stored row. A
// returning user keeps their saved locale and phone.
func (s *Service) Register(ctx context.Context, p Profile) (*domain.User, error) {
	u, err := s.store.UpsertUser(ctx, &domain.User{
		ChatID:    p.ChatID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Locale:    domain.LocaleQR,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "error_start_command", err)
	}

	logger.LogEvent(ctx, logger.Users, slog.LevelInfo, "user.registered",
		slog.Int64("chat_id", u.ChatID),
		slog.Bool("has_contact", u.HasContact()),
	)
	return u, nil
}

// Get fetches a user by chat id.
func (s *Service) Get(ctx context.Context, chatID int64) (*domain.User, error) {
	return s.store.GetUserByChatID(ctx, chatID)
}

// SetLocale persists the chosen interface language.
func (s *Service) SetLocale(ctx context.Context, chatID int64, loc domain.Locale) error {
	if err := s.store.SetUserLocale(ctx, chatID, loc); err != nil {
		return apperr.Wrap(apperr.KindInternal, "error_start_command", err)
	}
	logger.LogEvent(ctx, logger.Users, slog.LevelInfo, "user.locale_set",
		slog.Int64("chat_id", chatID),
		slog.String("locale", string(loc)),
	)
	return nil
}

// SaveContact stores the shared phone number. Only the user's own contact
// card is accepted; ownerID is the user id Telegram attached to the card.
func (s *Service) SaveContact(ctx context.Context, chatID, ownerID int64, phone string) error {
	if ownerID != 0 && ownerID != chatID {
		return apperr.New(apperr.KindValidation, "error_not_your_contact")
	}
	if phone == "" {
		return apperr.New(apperr.KindValidation, "error_contact_save")
	}
	if err := s.store.SetUserPhone(ctx, chatID, phone); err != nil {
		return apperr.Wrap(apperr.KindInternal, "error_contact_save", err)
	}
	logger.LogEvent(ctx, logger.Users, slog.LevelInfo, "user.contact_saved",
		slog.Int64("chat_id", chatID),
	)
	return nil
}

// Touch bumps last_activity, best effort.
func (s *Service) Touch(ctx context.Context, chatID int64) {
	if err := s.store.TouchUser(ctx, chatID); err != nil {
		logger.LogEvent(ctx, logger.Users, slog.LevelWarn, "user.touch_failed",
			slog.Int64("chat_id", chatID),
			slog.Any("error", err),
		)
	}
}
