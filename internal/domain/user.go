// Package domain holds the entities of the course storefront: users,
// courses, payment methods and payments.
package domain

import (
	"strings"
	"time"
)

// User is a Telegram user known to the bot.
type User struct {
	ID           int64     `db:"id"`
	ChatID       int64     `db:"chat_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Phone        string    `db:"phone"`
	Locale       Locale    `db:"locale"`
	IsActive     bool      `db:"is_active"`
	IsBlocked    bool      `db:"is_blocked"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	LastActivity time.Time `db:"last_activity"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	parts := make([]string, 0, 2)
	if u.FirstName != "" {
		parts = append(parts, u.FirstName)
	}
	if u.LastName != "" {
		parts = append(parts, u.LastName)
	}
	return strings.Join(parts, " ")
}

// DisplayName returns the best human-readable handle for admin messages.
func (u User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return ""
}

// HasContact reports whether the user has shared a phone number.
func (u User) HasContact() bool {
	return u.Phone != ""
}
