package availability

import (
	"context"
	"sort"
	"sync"
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/utils"

	"github.com/google/uuid"
)

// MemoryIndex is an in-process Index. One mutex guards every site, so check-and-insert
// is atomic and concurrent bookings, on any site, are applied one at a time.
type MemoryIndex struct {
	mu    sync.RWMutex
	sites map[uuid.UUID][]*entity.Reservation
	byID  map[uuid.UUID]*entity.Reservation
	byKey map[string]*entity.Reservation

	clock utils.Clock
}

var _ Index = (*MemoryIndex)(nil)

// NewMemoryIndex stamps status transitions with clock.
func NewMemoryIndex(clock utils.Clock) *MemoryIndex {
	return &MemoryIndex{
		sites: make(map[uuid.UUID][]*entity.Reservation),
		byID:  make(map[uuid.UUID]*entity.Reservation),
		byKey: make(map[string]*entity.Reservation),
		clock: clock,
	}
}

func (m *MemoryIndex) CheckConflict(_ context.Context, siteID uuid.UUID, stay entity.DateRange) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conflictLocked(siteID, stay) != nil, nil
}

func (m *MemoryIndex) conflictLocked(siteID uuid.UUID, stay entity.DateRange) *entity.Reservation {
	for _, r := range m.sites[siteID] {
		if r.Status.Occupies() && r.Stay.Overlaps(stay) {
			return r
		}
	}
	return nil
}

func (m *MemoryIndex) Insert(ctx context.Context, reservation *entity.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.conflictLocked(reservation.SiteID, reservation.Stay); existing != nil {
		return apperror.Conflict("site %s is already reserved for %s", reservation.SiteID, existing.Stay)
	}
	if reservation.IdempotencyKey != nil {
		if _, taken := m.byKey[*reservation.IdempotencyKey]; taken {
			return apperror.Conflict("idempotency key %q already used", *reservation.IdempotencyKey)
		}
	}

	stored := clone(reservation)
	m.sites[stored.SiteID] = append(m.sites[stored.SiteID], stored)
	m.byID[stored.ID] = stored
	if stored.IdempotencyKey != nil {
		m.byKey[*stored.IdempotencyKey] = stored
	}
	return nil
}

func (m *MemoryIndex) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(r), nil
}

func (m *MemoryIndex) FindByIdempotencyKey(_ context.Context, key string) (*entity.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byKey[key]
	if !ok {
		return nil, nil
	}
	return clone(r), nil
}

func (m *MemoryIndex) Confirm(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("reservation %s not found", id)
	}
	if r.Status != entity.ReservationStatusPending {
		return nil, apperror.InvalidState("reservation %s is %s, only pending reservations can be confirmed", id, r.Status)
	}
	r.Status = entity.ReservationStatusConfirmed
	r.Touch(m.clock.Now())
	return clone(r), nil
}

func (m *MemoryIndex) Cancel(_ context.Context, id uuid.UUID, reason string) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("reservation %s not found", id)
	}
	if !r.Status.Occupies() {
		return nil, apperror.InvalidState("reservation %s is already %s", id, r.Status)
	}
	m.cancelLocked(r, reason)
	return clone(r), nil
}

func (m *MemoryIndex) cancelLocked(r *entity.Reservation, reason string) {
	r.Status = entity.ReservationStatusCancelled
	r.Touch(m.clock.Now())
	if reason != "" {
		r.CancelReason = &reason
	}
}

func (m *MemoryIndex) ExpirePending(_ context.Context, cutoff time.Time, reason string) ([]*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []*entity.Reservation
	for _, r := range m.byID {
		if r.Status == entity.ReservationStatusPending && r.CreatedAt.Before(cutoff) {
			m.cancelLocked(r, reason)
			expired = append(expired, clone(r))
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].CreatedAt.Before(expired[j].CreatedAt)
	})
	return expired, nil
}

func (m *MemoryIndex) ReservedRanges(_ context.Context, siteIDs []uuid.UUID) (map[uuid.UUID][]entity.DateRange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[uuid.UUID][]entity.DateRange, len(siteIDs))
	for _, siteID := range siteIDs {
		ranges := make([]entity.DateRange, 0)
		for _, r := range m.sites[siteID] {
			if r.Status.Occupies() {
				ranges = append(ranges, r.Stay)
			}
		}
		sort.Slice(ranges, func(i, j int) bool {
			return ranges[i].Start.Before(ranges[j].Start)
		})
		out[siteID] = ranges
	}
	return out, nil
}

func clone(r *entity.Reservation) *entity.Reservation {
	c := *r
	if r.IdempotencyKey != nil {
		key := *r.IdempotencyKey
		c.IdempotencyKey = &key
	}
	if r.CancelReason != nil {
		reason := *r.CancelReason
		c.CancelReason = &reason
	}
	return &c
}
