package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

const paymentColumns = `id, user_id, course_id, method_id, amount, receipt_path,
	user_comment, status, admin_comment, admin_id, link_sent,
	created_at, updated_at, approved_at`

// uniqueViolation is the PostgreSQL error code raised by the partial unique
// index on (user_id, course_id) for pending/approved payments.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// CreatePayment inserts a pending payment with its notification row in one
// transaction. A concurrent purchase of the same course trips the partial
// unique index and comes back as a conflict carrying the blocking status.
func (s *Storage) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create payment: %w", err)
	}
	defer tx.Rollback()

	const insertPayment = `
		INSERT INTO payments (user_id, course_id, method_id, amount, receipt_path, user_comment, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + paymentColumns

	var stored domain.Payment
	err = tx.GetContext(ctx, &stored, insertPayment,
		p.UserID, p.CourseID, p.MethodID, p.Amount, p.ReceiptPath, p.UserComment)
	if err != nil {
		if isUniqueViolation(err) {
			status := s.blockingStatus(ctx, p.UserID, p.CourseID)
			return nil, apperr.Conflict("payment_already_pending", status)
		}
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	const insertNotification = `INSERT INTO payment_notifications (payment_id) VALUES ($1)`
	if _, err := tx.ExecContext(ctx, insertNotification, stored.ID); err != nil {
		return nil, fmt.Errorf("insert payment notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create payment: %w", err)
	}
	return &stored, nil
}

// blockingStatus looks up which status caused a duplicate-purchase conflict.
// Falls back to pending when the row was already resolved by the time we look.
func (s *Storage) blockingStatus(ctx context.Context, userID, courseID int64) string {
	const query = `
		SELECT status FROM payments
		WHERE user_id = $1 AND course_id = $2 AND status IN ('pending', 'approved')
		LIMIT 1
	`
	var status string
	if err := s.db.GetContext(ctx, &status, query, userID, courseID); err != nil {
		return string(domain.PaymentPending)
	}
	return status
}

// FindBlockingPayment returns the pending or approved payment that blocks a
// new purchase of the course, or nil when the user can buy.
func (s *Storage) FindBlockingPayment(ctx context.Context, userID, courseID int64) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE user_id = $1 AND course_id = $2 AND status IN ('pending', 'approved')
		LIMIT 1
	`

	var p domain.Payment
	if err := s.db.GetContext(ctx, &p, query, userID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find blocking payment: %w", err)
	}
	return &p, nil
}

// GetPayment fetches one payment by id.
func (s *Storage) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p domain.Payment
	if err := s.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.KindNotFound, "error_payment_save", err)
		}
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return &p, nil
}

// ApprovePayment moves a pending payment to approved. Returns the updated
// row, or a conflict error carrying the current status when the payment was
// already resolved.
func (s *Storage) ApprovePayment(ctx context.Context, id, adminID int64) (*domain.Payment, error) {
	query := `
		UPDATE payments
		SET status = 'approved', admin_id = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + paymentColumns

	var p domain.Payment
	err := s.db.GetContext(ctx, &p, query, id, adminID)
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.resolvedConflictErr(ctx, id)
	}
	return nil, fmt.Errorf("approve payment %d: %w", id, err)
}

// RejectPayment moves a pending payment to rejected with an optional admin
// comment shown to the buyer.
func (s *Storage) RejectPayment(ctx context.Context, id, adminID int64, comment string) (*domain.Payment, error) {
	query := `
		UPDATE payments
		SET status = 'rejected', admin_id = $2, admin_comment = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + paymentColumns

	var p domain.Payment
	err := s.db.GetContext(ctx, &p, query, id, adminID, comment)
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.resolvedConflictErr(ctx, id)
	}
	return nil, fmt.Errorf("reject payment %d: %w", id, err)
}

func (s *Storage) resolvedConflictErr(ctx context.Context, id int64) error {
	p, err := s.GetPayment(ctx, id)
	if err != nil {
		return err
	}
	return apperr.Conflict("payment_already_pending", string(p.Status))
}

// CancelPayment cancels a pending payment on the buyer's request. Only the
// owner's own pending payment moves; anything else yields a conflict error
// carrying the current status.
func (s *Storage) CancelPayment(ctx context.Context, id, userID int64) error {
	const query = `
		UPDATE payments
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'pending'
	`
	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("cancel payment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel payment %d: %w", id, err)
	}
	if n == 0 {
		return s.resolvedConflictErr(ctx, id)
	}
	return nil
}

// SetLinkSent records that the group link reached the buyer.
func (s *Storage) SetLinkSent(ctx context.Context, id int64) error {
	const query = `UPDATE payments SET link_sent = TRUE, updated_at = NOW() WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("set link sent for payment %d: %w", id, err)
	}
	return nil
}

// ListPendingPayments returns payments awaiting review, oldest first.
func (s *Storage) ListPendingPayments(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = 'pending' ORDER BY created_at`

	var payments []domain.Payment
	if err := s.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}
	return payments, nil
}

// MarkAdminNotified flags a payment as announced to the admin chat.
func (s *Storage) MarkAdminNotified(ctx context.Context, paymentID int64) error {
	const query = `UPDATE payment_notifications SET admin_notified = TRUE WHERE payment_id = $1`
	if _, err := s.db.ExecContext(ctx, query, paymentID); err != nil {
		return fmt.Errorf("mark admin notified for payment %d: %w", paymentID, err)
	}
	return nil
}

// MarkUserNotified flags the buyer as told about the payment outcome.
func (s *Storage) MarkUserNotified(ctx context.Context, paymentID int64, approved bool) error {
	column := "user_notified_rejected"
	if approved {
		column = "user_notified_approved"
	}
	query := fmt.Sprintf(`UPDATE payment_notifications SET %s = TRUE WHERE payment_id = $1`, column)
	if _, err := s.db.ExecContext(ctx, query, paymentID); err != nil {
		return fmt.Errorf("mark user notified for payment %d: %w", paymentID, err)
	}
	return nil
}

// ListUnnotifiedPayments returns payments whose notifications have not gone
// out yet: pending ones the admin never saw and resolved ones the buyer was
// never told about. The sweeper resends these.
func (s *Storage) ListUnnotifiedPayments(ctx context.Context) ([]domain.Payment, error) {
	query := `
		SELECT ` + prefixedPaymentColumns("p") + `
		FROM payments p
		JOIN payment_notifications n ON n.payment_id = p.id
		WHERE (p.status = 'pending' AND NOT n.admin_notified)
			OR (p.status = 'approved' AND NOT n.user_notified_approved)
			OR (p.status = 'rejected' AND NOT n.user_notified_rejected)
		ORDER BY p.created_at
	`

	var payments []domain.Payment
	if err := s.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list unnotified payments: %w", err)
	}
	return payments, nil
}

func prefixedPaymentColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.user_id, %[1]s.course_id, %[1]s.method_id, %[1]s.amount,
		%[1]s.receipt_path, %[1]s.user_comment, %[1]s.status, %[1]s.admin_comment,
		%[1]s.admin_id, %[1]s.link_sent, %[1]s.created_at, %[1]s.updated_at, %[1]s.approved_at`, alias)
}

// GetNotification fetches the notification flags for a payment.
func (s *Storage) GetNotification(ctx context.Context, paymentID int64) (*domain.PaymentNotification, error) {
	const query = `
		SELECT payment_id, admin_notified, user_notified_approved, user_notified_rejected, created_at
		FROM payment_notifications
		WHERE payment_id = $1
	`

	var n domain.PaymentNotification
	if err := s.db.GetContext(ctx, &n, query, paymentID); err != nil {
		return nil, fmt.Errorf("get notification for payment %d: %w", paymentID, err)
	}
	return &n, nil
}
