package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the domain repositories and owns the GORM handle.
// DB is the single point where a request context binds to the connection.
type Base struct {
	db *gorm.DB
}

// NewBase wraps the provided GORM connection, which may be a transaction.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
