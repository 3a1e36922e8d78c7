package domain

import (
	"database/sql"
	"time"
)

// PaymentStatus tracks where a purchase is in its review lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentApproved  PaymentStatus = "approved"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Blocking reports whether a payment in this status prevents the same user
// from opening another purchase of the same course.
func (s PaymentStatus) Blocking() bool {
	return s == PaymentPending || s == PaymentApproved
}

// Payment records a purchase attempt with its uploaded receipt.
type Payment struct {
	ID       int64 `db:"id"`
	UserID   int64 `db:"user_id"`
	CourseID int64 `db:"course_id"`
	MethodID int64 `db:"method_id"`
	// Amount snapshots the course price at purchase time.
	Amount       int64         `db:"amount"`
	ReceiptPath  string        `db:"receipt_path"`
	UserComment  string        `db:"user_comment"`
	Status       PaymentStatus `db:"status"`
	AdminComment string        `db:"admin_comment"`
	AdminID      sql.NullInt64 `db:"admin_id"`
	LinkSent     bool          `db:"link_sent"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
	ApprovedAt   sql.NullTime  `db:"approved_at"`
}

// PaymentNotification tracks which notifications for a payment went out, so
// the sweeper can resend missed ones without duplicating delivered ones.
type PaymentNotification struct {
	PaymentID            int64     `db:"payment_id"`
	AdminNotified        bool      `db:"admin_notified"`
	UserNotifiedApproved bool      `db:"user_notified_approved"`
	UserNotifiedRejected bool      `db:"user_notified_rejected"`
	CreatedAt            time.Time `db:"created_at"`
}
