package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by catalog rows (campgrounds, sites) that admin tooling soft deletes.
type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (b Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// BaseNoDelete is embedded by rows that are kept for audit: reservations only change
// status, pricing rules are superseded by new rows.
type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewRecord stamps a fresh row created at now.
func NewRecord(id uuid.UUID, now time.Time) BaseNoDelete {
	return BaseNoDelete{ID: id, CreatedAt: now, UpdatedAt: now}
}

// Touch records a status transition at now.
func (b *BaseNoDelete) Touch(now time.Time) {
	b.UpdatedAt = now
}
