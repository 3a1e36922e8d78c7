// Package payments drives the purchase lifecycle: receipt intake, the
// pending record, admin review and outcome notifications.
package payments

import (
	"context"
	"io"
	"log/slog"

	"github.com/m3rciful/coursebot/core/logger"
	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	GetUserByChatID(ctx context.Context, chatID int64) (*domain.User, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	CountApprovedPayments(ctx context.Context, courseID int64) (int64, error)
	GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error)

	CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindBlockingPayment(ctx context.Context, userID, courseID int64) (*domain.Payment, error)
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	ApprovePayment(ctx context.Context, id, adminID int64) (*domain.Payment, error)
	RejectPayment(ctx context.Context, id, adminID int64, comment string) (*domain.Payment, error)
	CancelPayment(ctx context.Context, id, userID int64) error
	SetLinkSent(ctx context.Context, id int64) error
	ListPendingPayments(ctx context.Context) ([]domain.Payment, error)
	ListUnnotifiedPayments(ctx context.Context) ([]domain.Payment, error)
	GetNotification(ctx context.Context, paymentID int64) (*domain.PaymentNotification, error)
	MarkAdminNotified(ctx context.Context, paymentID int64) error
	MarkUserNotified(ctx context.Context, paymentID int64, approved bool) error
}

// ReceiptStore persists uploaded receipt files.
type ReceiptStore interface {
	Save(ctx context.Context, chatID int64, ext string, body io.Reader) (string, error)
}

// Info bundles a payment with the rows notifications and admin texts need.
type Info struct {
	Payment domain.Payment
	User    domain.User
	Course  domain.Course
	Method  domain.PaymentMethod
	// LinkDelivered reports whether the approval message with the group
	// link reached the buyer.
	LinkDelivered bool
}

// Notifier delivers payment notifications over the chat transport. A
// delivery error leaves the notification flag unset so the sweep retries.
type Notifier interface {
	NewPayment(ctx context.Context, info *Info) error
	Approved(ctx context.Context, info *Info) error
	Rejected(ctx context.Context, info *Info) error
}

// Service implements the payment lifecycle.
type Service struct {
	store    Store
	receipts ReceiptStore
	notifier Notifier
}

// New builds the payments service. The notifier may be nil in tests.
func New(store Store, receipts ReceiptStore, notifier Notifier) *Service {
	return &Service{store: store, receipts: receipts, notifier: notifier}
}

// SetNotifier installs the notifier after construction. The bot wires it
// late because the notifier needs the running bot instance.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Blocking returns the pending or approved payment preventing a new
// purchase, or nil.
func (s *Service) Blocking(ctx context.Context, chatID, courseID int64) (*domain.Payment, error) {
	return s.store.FindBlockingPayment(ctx, chatID, courseID)
}

// CreateParams describe a receipt upload completing a purchase.
type CreateParams struct {
	ChatID   int64
	CourseID int64
	MethodID int64

	Receipt  io.Reader
	FileName string
	MIME     string
	Size     int64
	// FromPhoto marks a Telegram photo upload, which skips MIME and size
	// validation because Telegram re-encodes photos itself.
	FromPhoto bool

	Comment string
}

// Create validates the receipt, stores it and inserts the pending payment.
// The admin is notified best effort; a failed notification is retried by
// the sweep.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Info, error) {
	if !p.FromPhoto {
		if err := domain.ValidateReceiptDocument(p.MIME, p.Size); err != nil {
			return nil, err
		}
	}

	course, err := s.store.GetCourse(ctx, p.CourseID)
	if err != nil {
		return nil, err
	}
	approved, err := s.store.CountApprovedPayments(ctx, p.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.Available(approved) {
		return nil, apperr.New(apperr.KindConflict, "course_not_available")
	}

	method, err := s.store.GetPaymentMethod(ctx, p.MethodID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByChatID(ctx, p.ChatID)
	if err != nil {
		return nil, err
	}

	ext := domain.ReceiptExtension(p.MIME, p.FileName)
	path, err := s.receipts.Save(ctx, p.ChatID, ext, p.Receipt)
	if err != nil {
		return nil, err
	}

	payment, err := s.store.CreatePayment(ctx, &domain.Payment{
		UserID:      p.ChatID,
		CourseID:    p.CourseID,
		MethodID:    p.MethodID,
		Amount:      course.Price,
		ReceiptPath: path,
		UserComment: p.Comment,
	})
	if err != nil {
		return nil, err
	}

	logger.LogEvent(ctx, logger.Payments, slog.LevelInfo, "payment.created",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("chat_id", p.ChatID),
		slog.Int64("course_id", p.CourseID),
		slog.Int64("amount", payment.Amount),
	)

	info := &Info{Payment: *payment, User: *user, Course: *course, Method: *method}
	s.notifyAdmin(ctx, info)
	return info, nil
}

// Approve moves a pending payment to approved, stamps the admin and
// delivers the group link. Re-approving a resolved payment returns a
// conflict error carrying the current status.
func (s *Service) Approve(ctx context.Context, paymentID, adminID int64) (*Info, error) {
	payment, err := s.store.ApprovePayment(ctx, paymentID, adminID)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(ctx, logger.Payments, slog.LevelInfo, "payment.approved",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("admin_id", adminID),
	)

	info, err := s.buildInfo(ctx, payment)
	if err != nil {
		return nil, err
	}
	info.LinkDelivered = s.notifyApproved(ctx, info)
	return info, nil
}

// Reject moves a pending payment to rejected with an admin comment and
// tells the buyer.
func (s *Service) Reject(ctx context.Context, paymentID, adminID int64, comment string) (*Info, error) {
	payment, err := s.store.RejectPayment(ctx, paymentID, adminID, comment)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(ctx, logger.Payments, slog.LevelInfo, "payment.rejected",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("admin_id", adminID),
	)

	info, err := s.buildInfo(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.notifyRejected(ctx, info)
	return info, nil
}

// Cancel withdraws the buyer's own pending payment so the course can be
// bought again later. Cancelling a resolved payment or somebody else's
// returns a conflict error carrying the current status.
func (s *Service) Cancel(ctx context.Context, paymentID, chatID int64) error {
	if err := s.store.CancelPayment(ctx, paymentID, chatID); err != nil {
		return err
	}
	logger.LogEvent(ctx, logger.Payments, slog.LevelInfo, "payment.cancelled",
		slog.Int64("payment_id", paymentID),
		slog.Int64("chat_id", chatID),
	)
	return nil
}

// Pending lists payments awaiting review with their context rows.
func (s *Service) Pending(ctx context.Context) ([]Info, error) {
	payments, err := s.store.ListPendingPayments(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(payments))
	for i := range payments {
		info, err := s.buildInfo(ctx, &payments[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

// Sweep resends notifications that never went out: pending payments the
// admin has not seen and resolved payments the buyer was not told about.
// Runs at startup.
func (s *Service) Sweep(ctx context.Context) error {
	payments, err := s.store.ListUnnotifiedPayments(ctx)
	if err != nil {
		return err
	}

	var sent int
	for i := range payments {
		info, err := s.buildInfo(ctx, &payments[i])
		if err != nil {
			logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.sweep_skip",
				slog.Int64("payment_id", payments[i].ID),
				slog.Any("error", err),
			)
			continue
		}
		switch info.Payment.Status {
		case domain.PaymentPending:
			s.notifyAdmin(ctx, info)
		case domain.PaymentApproved:
			s.notifyApproved(ctx, info)
		case domain.PaymentRejected:
			s.notifyRejected(ctx, info)
		}
		sent++
	}

	if len(payments) > 0 {
		logger.LogEvent(ctx, logger.Payments, slog.LevelInfo, "payment.sweep_done",
			slog.Int("pending_count", len(payments)),
			slog.Int("sent", sent),
		)
	}
	return nil
}

func (s *Service) buildInfo(ctx context.Context, p *domain.Payment) (*Info, error) {
	user, err := s.store.GetUserByChatID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	course, err := s.store.GetCourse(ctx, p.CourseID)
	if err != nil {
		return nil, err
	}
	method, err := s.store.GetPaymentMethod(ctx, p.MethodID)
	if err != nil {
		return nil, err
	}
	return &Info{Payment: *p, User: *user, Course: *course, Method: *method}, nil
}

func (s *Service) notifyAdmin(ctx context.Context, info *Info) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NewPayment(ctx, info); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.admin_notify_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
		return
	}
	if err := s.store.MarkAdminNotified(ctx, info.Payment.ID); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.flag_update_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
	}
}

func (s *Service) notifyApproved(ctx context.Context, info *Info) bool {
	if s.notifier == nil {
		return false
	}
	// The flag survives restarts, so a sweep racing a live approval never
	// delivers the link twice.
	if n, err := s.store.GetNotification(ctx, info.Payment.ID); err == nil && n.UserNotifiedApproved {
		return true
	}
	if err := s.notifier.Approved(ctx, info); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.user_notify_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
		return false
	}
	if err := s.store.MarkUserNotified(ctx, info.Payment.ID, true); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.flag_update_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
	}
	if err := s.store.SetLinkSent(ctx, info.Payment.ID); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.flag_update_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
	}
	return true
}

func (s *Service) notifyRejected(ctx context.Context, info *Info) {
	if s.notifier == nil {
		return
	}
	if n, err := s.store.GetNotification(ctx, info.Payment.ID); err == nil && n.UserNotifiedRejected {
		return
	}
	if err := s.notifier.Rejected(ctx, info); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.user_notify_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
		return
	}
	if err := s.store.MarkUserNotified(ctx, info.Payment.ID, false); err != nil {
		logger.LogEvent(ctx, logger.Payments, slog.LevelWarn, "payment.flag_update_failed",
			slog.Int64("payment_id", info.Payment.ID),
			slog.Any("error", err),
		)
	}
}
