// Package broadcast sends an announcement to every active user, best
// effort, with a configurable delay between sends so the Telegram flood
// limits stay out of reach.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/coursebot/core/logger"
	"github.com/m3rciful/coursebot/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	ListBroadcastTargets(ctx context.Context) ([]domain.User, error)
	SetUserBlocked(ctx context.Context, chatID int64, blocked bool) error
	CreateBroadcast(ctx context.Context, adminID int64, text string) (int64, error)
	FinishBroadcast(ctx context.Context, id int64, success, failed int64) error
}

// Sender delivers one broadcast message to a chat. Returning blocked=true
// marks the user so later runs skip them.
type Sender interface {
	SendBroadcast(ctx context.Context, chatID int64, msg Message) (blocked bool, err error)
}

// Message is one announcement.
type Message struct {
	Text       string
	ImageURL   string
	ButtonText string
	ButtonURL  string
}

// Result reports the delivery counters of a run.
type Result struct {
	Success int64
	Failed  int64
}

// Service runs broadcasts.
type Service struct {
	store  Store
	sender Sender
	delay  time.Duration
}

// New builds the broadcast service. delay spaces out consecutive sends.
func New(store Store, sender Sender, delay time.Duration) *Service {
	return &Service{store: store, sender: sender, delay: delay}
}

// SetSender installs the sender after construction, once the bot exists.
func (s *Service) SetSender(sender Sender) {
	s.sender = sender
}

// Run delivers msg to every active, unblocked user. Per-user failures are
// counted, never fatal; ctx cancellation stops the run early with the
// counters gathered so far.
func (s *Service) Run(ctx context.Context, adminID int64, msg Message) (Result, error) {
	users, err := s.store.ListBroadcastTargets(ctx)
	if err != nil {
		return Result{}, err
	}

	runID, err := s.store.CreateBroadcast(ctx, adminID, msg.Text)
	if err != nil {
		return Result{}, err
	}

	logger.LogEvent(ctx, logger.Broadcast, slog.LevelInfo, "broadcast.start",
		slog.Int64("broadcast_id", runID),
		slog.Int("targets", len(users)),
	)

	var res Result
	for i, u := range users {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				break
			}
		}

		blocked, err := s.sender.SendBroadcast(ctx, u.ChatID, msg)
		if err != nil {
			res.Failed++
			logger.LogEvent(ctx, logger.Broadcast, slog.LevelDebug, "broadcast.send_failed",
				slog.Int64("chat_id", u.ChatID),
				slog.Any("error", err),
			)
			if blocked {
				if berr := s.store.SetUserBlocked(ctx, u.ChatID, true); berr != nil {
					logger.LogEvent(ctx, logger.Broadcast, slog.LevelWarn, "broadcast.mark_blocked_failed",
						slog.Int64("chat_id", u.ChatID),
						slog.Any("error", berr),
					)
				}
			}
			continue
		}
		res.Success++
	}

	if err := s.store.FinishBroadcast(ctx, runID, res.Success, res.Failed); err != nil {
		logger.LogEvent(ctx, logger.Broadcast, slog.LevelWarn, "broadcast.finish_failed",
			slog.Int64("broadcast_id", runID),
			slog.Any("error", err),
		)
	}

	logger.LogEvent(ctx, logger.Broadcast, slog.LevelInfo, "broadcast.done",
		slog.Int64("broadcast_id", runID),
		slog.Int64("sent", res.Success),
		slog.Int64("failed", res.Failed),
	)
	return res, nil
}
