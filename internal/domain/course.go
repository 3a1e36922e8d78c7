package domain

import (
	"math"
	"time"
)

// Course is a sellable course. Prices are whole sums.
type Course struct {
	ID          int64         `db:"id"`
	Name        LocalizedText `db:"-"`
	Description LocalizedText `db:"-"`
	Price       int64         `db:"price"`
	// OldPrice, when set above Price, marks the course as discounted.
	OldPrice    int64     `db:"old_price"`
	GroupLink   string    `db:"group_link"`
	IsActive    bool      `db:"is_active"`
	IsFeatured  bool      `db:"is_featured"`
	MaxStudents int64     `db:"max_students"`
	Order       int64     `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// DiscountPercent derives the discount from the old price. Zero when there
// is no old price or it does not exceed the current one.
func (c Course) DiscountPercent() int {
	if c.OldPrice <= 0 || c.OldPrice <= c.Price {
		return 0
	}
	return int(math.Round(float64(c.OldPrice-c.Price) / float64(c.OldPrice) * 100))
}

// Available reports whether the course can be sold given the current number
// of approved purchases. A zero MaxStudents means no cap.
func (c Course) Available(approvedCount int64) bool {
	if !c.IsActive {
		return false
	}
	if c.MaxStudents > 0 && approvedCount >= c.MaxStudents {
		return false
	}
	return true
}

// FreeSlots returns the remaining capacity, or -1 when the course is uncapped.
func (c Course) FreeSlots(approvedCount int64) int64 {
	if c.MaxStudents <= 0 {
		return -1
	}
	free := c.MaxStudents - approvedCount
	if free < 0 {
		return 0
	}
	return free
}

// PaymentMethod describes card requisites shown to a buyer.
type PaymentMethod struct {
	ID           int64         `db:"id"`
	Name         LocalizedText `db:"-"`
	CardNumber   string        `db:"card_number"`
	Cardholder   string        `db:"cardholder_name"`
	BankName     string        `db:"bank_name"`
	Instructions LocalizedText `db:"-"`
	IsActive     bool          `db:"is_active"`
	Order        int64         `db:"sort_order"`
}
