// Package availability holds the authoritative record of which nights each site is occupied.
package availability

import (
	"context"
	"time"

	"campground-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Index is the per-site reservation index. Only pending and confirmed reservations
// occupy dates; a cancelled reservation stops blocking its dates as soon as Cancel returns.
type Index interface {
	// CheckConflict reports whether a pending or confirmed reservation on siteID overlaps stay.
	CheckConflict(ctx context.Context, siteID uuid.UUID, stay entity.DateRange) (bool, error)

	// Insert checks for conflicts and stores the reservation as one atomic step.
	// An overlap yields an apperror with code CONFLICT and nothing is stored.
	Insert(ctx context.Context, reservation *entity.Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Reservation, error)

	// Confirm moves a pending reservation to confirmed.
	Confirm(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	// Cancel moves a pending or confirmed reservation to cancelled.
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Reservation, error)
	// ExpirePending cancels every pending reservation created before cutoff.
	ExpirePending(ctx context.Context, cutoff time.Time, reason string) ([]*entity.Reservation, error)

	// ReservedRanges returns the occupied ranges of each requested site, ordered by check-in.
	// Sites without reservations map to an empty slice.
	ReservedRanges(ctx context.Context, siteIDs []uuid.UUID) (map[uuid.UUID][]entity.DateRange, error)
}
