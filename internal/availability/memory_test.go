package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var indexClock = time.Date(2025, time.November, 1, 8, 0, 0, 0, time.UTC)

func newIndex() *MemoryIndex {
	return NewMemoryIndex(utils.FixedClock(indexClock))
}

func nov(startDay, endDay int) entity.DateRange {
	return entity.DateRange{
		Start: entity.Date(2025, time.November, startDay),
		End:   entity.Date(2025, time.November, endDay),
	}
}

func newReservation(siteID uuid.UUID, stay entity.DateRange) *entity.Reservation {
	return &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		SiteID:       siteID,
		Stay:         stay,
		GuestCount:   2,
		Status:       entity.ReservationStatusPending,
	}
}

func TestMemoryIndex_AdjacentAdmittedOverlapRejected(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	site := uuid.New()

	require.NoError(t, idx.Insert(ctx, newReservation(site, nov(26, 27))))

	conflict, err := idx.CheckConflict(ctx, site, nov(27, 28))
	require.NoError(t, err)
	assert.False(t, conflict)
	require.NoError(t, idx.Insert(ctx, newReservation(site, nov(27, 28))))

	conflict, err = idx.CheckConflict(ctx, site, nov(26, 28))
	require.NoError(t, err)
	assert.True(t, conflict)

	err = idx.Insert(ctx, newReservation(site, nov(26, 28)))
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))

	// Another site is unaffected.
	require.NoError(t, idx.Insert(ctx, newReservation(uuid.New(), nov(26, 28))))
}

func TestMemoryIndex_CancelFreesDatesImmediately(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	site := uuid.New()

	first := newReservation(site, nov(10, 14))
	require.NoError(t, idx.Insert(ctx, first))

	cancelled, err := idx.Cancel(ctx, first.ID, "guest request")
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "guest request", *cancelled.CancelReason)

	conflict, err := idx.CheckConflict(ctx, site, nov(10, 14))
	require.NoError(t, err)
	assert.False(t, conflict)
	require.NoError(t, idx.Insert(ctx, newReservation(site, nov(11, 13))))

	_, err = idx.Cancel(ctx, first.ID, "again")
	assert.Equal(t, apperror.CodeInvalidState, apperror.CodeOf(err))

	_, err = idx.Cancel(ctx, uuid.New(), "")
	assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
}

func TestMemoryIndex_ConfirmOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	r := newReservation(uuid.New(), nov(1, 3))
	require.NoError(t, idx.Insert(ctx, r))

	confirmed, err := idx.Confirm(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, confirmed.Status)

	_, err = idx.Confirm(ctx, r.ID)
	assert.Equal(t, apperror.CodeInvalidState, apperror.CodeOf(err))

	conflict, err := idx.CheckConflict(ctx, r.SiteID, nov(2, 4))
	require.NoError(t, err)
	assert.True(t, conflict, "confirmed reservations keep occupying")
}

func TestMemoryIndex_StoredCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	r := newReservation(uuid.New(), nov(1, 3))
	require.NoError(t, idx.Insert(ctx, r))

	r.Status = entity.ReservationStatusCancelled

	got, err := idx.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusPending, got.Status)

	got.Status = entity.ReservationStatusCancelled
	conflict, err := idx.CheckConflict(ctx, r.SiteID, nov(1, 3))
	require.NoError(t, err)
	assert.True(t, conflict)

	missing, err := idx.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryIndex_IdempotencyKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	key := "req-1"

	first := newReservation(uuid.New(), nov(1, 3))
	first.IdempotencyKey = &key
	require.NoError(t, idx.Insert(ctx, first))

	second := newReservation(uuid.New(), nov(5, 6))
	second.IdempotencyKey = &key
	err := idx.Insert(ctx, second)
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))

	found, err := idx.FindByIdempotencyKey(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
}

func TestMemoryIndex_ExpirePending(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	site := uuid.New()
	cutoff := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)

	stale := newReservation(site, nov(1, 2))
	stale.CreatedAt = cutoff.Add(-time.Hour)
	fresh := newReservation(site, nov(2, 3))
	fresh.CreatedAt = cutoff.Add(time.Minute)
	paid := newReservation(site, nov(3, 4))
	paid.CreatedAt = cutoff.Add(-2 * time.Hour)

	for _, r := range []*entity.Reservation{stale, fresh, paid} {
		require.NoError(t, idx.Insert(ctx, r))
	}
	_, err := idx.Confirm(ctx, paid.ID)
	require.NoError(t, err)

	expired, err := idx.ExpirePending(ctx, cutoff, "payment timeout")
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
	assert.Equal(t, entity.ReservationStatusCancelled, expired[0].Status)

	ranges, err := idx.ReservedRanges(ctx, []uuid.UUID{site})
	require.NoError(t, err)
	assert.Equal(t, []entity.DateRange{nov(2, 3), nov(3, 4)}, ranges[site])
}

func TestMemoryIndex_ReservedRangesOrderedAndComplete(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, idx.Insert(ctx, newReservation(a, nov(20, 22))))
	require.NoError(t, idx.Insert(ctx, newReservation(a, nov(5, 7))))

	ranges, err := idx.ReservedRanges(ctx, []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Equal(t, []entity.DateRange{nov(5, 7), nov(20, 22)}, ranges[a])
	assert.NotNil(t, ranges[b])
	assert.Empty(t, ranges[b])
}

func TestMemoryIndex_ConcurrentInsertsExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	site := uuid.New()
	const attempts = 50

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		admitted  int
		conflicts int
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := idx.Insert(ctx, newReservation(site, nov(14, 17)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case apperror.CodeOf(err) == apperror.CodeConflict:
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, admitted)
	assert.Equal(t, attempts-1, conflicts)

	ranges, err := idx.ReservedRanges(ctx, []uuid.UUID{site})
	require.NoError(t, err)
	assert.Len(t, ranges[site], 1)
}

func TestMemoryIndex_TransitionsUseInjectedClock(t *testing.T) {
	ctx := context.Background()
	idx := newIndex()
	confirmed := newReservation(uuid.New(), nov(1, 3))
	cancelled := newReservation(uuid.New(), nov(1, 3))
	require.NoError(t, idx.Insert(ctx, confirmed))
	require.NoError(t, idx.Insert(ctx, cancelled))

	got, err := idx.Confirm(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, indexClock, got.UpdatedAt)

	got, err = idx.Cancel(ctx, cancelled.ID, "weather")
	require.NoError(t, err)
	assert.Equal(t, indexClock, got.UpdatedAt)
}
