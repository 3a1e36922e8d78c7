// Package postgres implements persistence for users, the course catalog and
// the payment lifecycle on PostgreSQL via sqlx.
package postgres

import (
	"github.com/jmoiron/sqlx"
)

// Storage bundles all repositories over one connection pool.
type Storage struct {
	db *sqlx.DB
}

// New builds a Storage over an established pool.
func New(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}
