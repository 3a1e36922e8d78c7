package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m3rciful/coursebot/internal/apperr"
	"github.com/m3rciful/coursebot/internal/domain"
)

// courseRow flattens the localized name and description columns.
type courseRow struct {
	ID            int64     `db:"id"`
	NameQR        string    `db:"name_qr"`
	NameUZ        string    `db:"name_uz"`
	DescriptionQR string    `db:"description_qr"`
	DescriptionUZ string    `db:"description_uz"`
	Price         int64     `db:"price"`
	OldPrice      int64     `db:"old_price"`
	GroupLink     string    `db:"group_link"`
	IsActive      bool      `db:"is_active"`
	IsFeatured    bool      `db:"is_featured"`
	MaxStudents   int64     `db:"max_students"`
	Order         int64     `db:"sort_order"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r courseRow) toDomain() domain.Course {
	return domain.Course{
		ID:          r.ID,
		Name:        domain.LocalizedText{QR: r.NameQR, UZ: r.NameUZ},
		Description: domain.LocalizedText{QR: r.DescriptionQR, UZ: r.DescriptionUZ},
		Price:       r.Price,
		OldPrice:    r.OldPrice,
		GroupLink:   r.GroupLink,
		IsActive:    r.IsActive,
		IsFeatured:  r.IsFeatured,
		MaxStudents: r.MaxStudents,
		Order:       r.Order,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const courseColumns = `id, name_qr, name_uz, description_qr, description_uz,
	price, old_price, group_link, is_active, is_featured, max_students,
	sort_order, created_at, updated_at`

// ListActiveCourses returns sellable courses in display order.
func (s *Storage) ListActiveCourses(ctx context.Context) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_active ORDER BY sort_order, id`

	var rows []courseRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}
	courses := make([]domain.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.toDomain())
	}
	return courses, nil
}

// GetCourse fetches one course by id, active or not.
func (s *Storage) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var row courseRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.KindNotFound, "course_not_available", err)
		}
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	c := row.toDomain()
	return &c, nil
}

// CountApprovedPayments reports how many slots a course has sold.
func (s *Storage) CountApprovedPayments(ctx context.Context, courseID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM payments WHERE course_id = $1 AND status = 'approved'`

	var n int64
	if err := s.db.GetContext(ctx, &n, query, courseID); err != nil {
		return 0, fmt.Errorf("count approved payments for course %d: %w", courseID, err)
	}
	return n, nil
}

// methodRow flattens the localized name and instructions columns.
type methodRow struct {
	ID             int64  `db:"id"`
	NameQR         string `db:"name_qr"`
	NameUZ         string `db:"name_uz"`
	CardNumber     string `db:"card_number"`
	Cardholder     string `db:"cardholder_name"`
	BankName       string `db:"bank_name"`
	InstructionsQR string `db:"instructions_qr"`
	InstructionsUZ string `db:"instructions_uz"`
	IsActive       bool   `db:"is_active"`
	Order          int64  `db:"sort_order"`
}

func (r methodRow) toDomain() domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:           r.ID,
		Name:         domain.LocalizedText{QR: r.NameQR, UZ: r.NameUZ},
		CardNumber:   r.CardNumber,
		Cardholder:   r.Cardholder,
		BankName:     r.BankName,
		Instructions: domain.LocalizedText{QR: r.InstructionsQR, UZ: r.InstructionsUZ},
		IsActive:     r.IsActive,
		Order:        r.Order,
	}
}

const methodColumns = `id, name_qr, name_uz, card_number, cardholder_name, bank_name,
	instructions_qr, instructions_uz, is_active, sort_order`

// ListActivePaymentMethods returns selectable payment methods in display order.
func (s *Storage) ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `SELECT ` + methodColumns + ` FROM payment_methods WHERE is_active ORDER BY sort_order, id`

	var rows []methodRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	methods := make([]domain.PaymentMethod, 0, len(rows))
	for _, r := range rows {
		methods = append(methods, r.toDomain())
	}
	return methods, nil
}

// GetPaymentMethod fetches one payment method by id.
func (s *Storage) GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	query := `SELECT ` + methodColumns + ` FROM payment_methods WHERE id = $1`

	var row methodRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.KindNotFound, "no_payment_methods_available", err)
		}
		return nil, fmt.Errorf("get payment method %d: %w", id, err)
	}
	m := row.toDomain()
	return &m, nil
}

// CountPaymentMethods reports how many methods exist, active or not. The
// seeder uses it to decide whether defaults are needed.
func (s *Storage) CountPaymentMethods(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM payment_methods`

	var n int64
	if err := s.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count payment methods: %w", err)
	}
	return n, nil
}

// GetInfoPage fetches the localized content of a static page ("about",
// "support").
func (s *Storage) GetInfoPage(ctx context.Context, key string) (domain.LocalizedText, error) {
	const query = `SELECT content_qr, content_uz FROM info_pages WHERE key = $1`

	var row struct {
		ContentQR string `db:"content_qr"`
		ContentUZ string `db:"content_uz"`
	}
	if err := s.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LocalizedText{}, apperr.Wrap(apperr.KindNotFound, "info_not_found", err)
		}
		return domain.LocalizedText{}, fmt.Errorf("get info page %q: %w", key, err)
	}
	return domain.LocalizedText{QR: row.ContentQR, UZ: row.ContentUZ}, nil
}
