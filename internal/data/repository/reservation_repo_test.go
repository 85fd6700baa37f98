package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeRow scans values positionally into the destination pointers.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type execCall struct {
	sql  string
	args []any
}

type fakeTx struct {
	pgx.Tx
	overlap    bool
	insertErr  error
	execs      []execCall
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, execCall{sql: sql, args: args})
	if strings.Contains(sql, "INSERT INTO reservations") {
		return pgconn.CommandTag{}, tx.insertErr
	}
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{values: []any{tx.overlap}}
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

// fakeDB answers QueryRow calls from rows in order.
type fakeDB struct {
	database.PgxIface
	tx      *fakeTx
	rows    []pgx.Row
	queries []string
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return db.tx, nil
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	db.queries = append(db.queries, sql)
	if len(db.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	row := db.rows[0]
	db.rows = db.rows[1:]
	return row
}

func sampleReservation(status entity.ReservationStatus) *entity.Reservation {
	now := time.Date(2025, time.November, 1, 8, 0, 0, 0, time.UTC)
	id := uuid.New()
	return &entity.Reservation{
		BaseNoDelete: entity.NewRecord(id, now),
		Code:         "CAMP-20251101-080000-9F3A1C",
		SiteID:       uuid.New(),
		CampgroundID: uuid.New(),
		Stay:         entity.DateRange{Start: entity.Date(2025, time.November, 26), End: entity.Date(2025, time.November, 27)},
		GuestCount:   2,
		Status:       status,
		TotalAmount:  50000,
		Breakdown:    &entity.PriceBreakdown{Subtotal: 50000, TotalAmount: 50000},
	}
}

func reservationRow(res *entity.Reservation) fakeRow {
	return fakeRow{values: []any{
		res.ID,
		res.Code,
		res.SiteID,
		res.CampgroundID,
		res.Stay.Start,
		res.Stay.End,
		res.GuestCount,
		res.Status,
		res.TotalAmount,
		[]byte(`{"subtotal":50000,"total_amount":50000}`),
		res.IdempotencyKey,
		res.CancelReason,
		res.CreatedAt,
		res.UpdatedAt,
	}}
}

func TestInsertError(t *testing.T) {
	res := sampleReservation(entity.ReservationStatusPending)
	plain := errors.New("connection reset by peer")

	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{"overlap caught by exclusion constraint", &pgconn.PgError{Code: pgExclusionViolation, ConstraintName: "reservations_no_overlap"}, true},
		{"idempotency key taken", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: idempotencyKeyConstraint}, true},
		{"reservation code collision", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "reservations_code_key"}, false},
		{"foreign key violation", &pgconn.PgError{Code: "23503", ConstraintName: "reservations_site_id_fkey"}, false},
		{"not a postgres error", plain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertError(res, tt.err)

			if tt.wantConflict {
				assert.ErrorIs(t, got, apperror.ErrConflict)
				var pgErr *pgconn.PgError
				assert.True(t, errors.As(got, &pgErr), "cause is kept")
				return
			}
			assert.Equal(t, apperror.Code(""), apperror.CodeOf(got))
			assert.Same(t, tt.err, got)
		})
	}
}

func TestReservationRepository_InsertLocksChecksAndCommits(t *testing.T) {
	tx := &fakeTx{}
	repo := NewReservationRepository(&fakeDB{tx: tx}, zap.NewNop())
	res := sampleReservation(entity.ReservationStatusPending)

	require.NoError(t, repo.Insert(context.Background(), res))

	require.Len(t, tx.execs, 2)
	assert.Contains(t, tx.execs[0].sql, "pg_advisory_xact_lock")
	assert.Equal(t, []any{res.SiteID.String()}, tx.execs[0].args)
	assert.Contains(t, tx.execs[1].sql, "INSERT INTO reservations")
	assert.Equal(t, res.ID, tx.execs[1].args[0])
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestReservationRepository_InsertRejectsOverlap(t *testing.T) {
	tx := &fakeTx{overlap: true}
	repo := NewReservationRepository(&fakeDB{tx: tx}, zap.NewNop())

	err := repo.Insert(context.Background(), sampleReservation(entity.ReservationStatusPending))

	assert.ErrorIs(t, err, apperror.ErrConflict)
	require.Len(t, tx.execs, 1, "nothing is inserted")
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestReservationRepository_InsertFailures(t *testing.T) {
	tests := []struct {
		name         string
		insertErr    error
		wantConflict bool
	}{
		{"exclusion violation", &pgconn.PgError{Code: pgExclusionViolation}, true},
		{"duplicate idempotency key", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: idempotencyKeyConstraint}, true},
		{"database error", errors.New("connection reset by peer"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			tx := &fakeTx{insertErr: tt.insertErr}
			repo := NewReservationRepository(&fakeDB{tx: tx}, zap.New(core))

			err := repo.Insert(context.Background(), sampleReservation(entity.ReservationStatusPending))

			require.Error(t, err)
			assert.True(t, tx.rolledBack)
			assert.False(t, tx.committed)
			if tt.wantConflict {
				assert.ErrorIs(t, err, apperror.ErrConflict)
				assert.Zero(t, logs.Len())
				return
			}
			assert.ErrorIs(t, err, tt.insertErr)
			assert.Equal(t, apperror.Code(""), apperror.CodeOf(err))
			assert.Equal(t, 1, logs.FilterMessage("Failed to insert reservation").Len())
		})
	}
}

func TestReservationRepository_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("guard matches", func(t *testing.T) {
		confirmed := sampleReservation(entity.ReservationStatusConfirmed)
		db := &fakeDB{rows: []pgx.Row{reservationRow(confirmed)}}

		got, err := NewReservationRepository(db, zap.NewNop()).Confirm(ctx, confirmed.ID)

		require.NoError(t, err)
		assert.Equal(t, entity.ReservationStatusConfirmed, got.Status)
		assert.Equal(t, int64(50000), got.Breakdown.TotalAmount)
		require.Len(t, db.queries, 1)
		assert.Contains(t, db.queries[0], "status = 'pending'")
	})

	t.Run("missing reservation", func(t *testing.T) {
		db := &fakeDB{}

		_, err := NewReservationRepository(db, zap.NewNop()).Confirm(ctx, uuid.New())

		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Len(t, db.queries, 2)
	})

	t.Run("wrong state", func(t *testing.T) {
		cancelled := sampleReservation(entity.ReservationStatusCancelled)
		db := &fakeDB{rows: []pgx.Row{fakeRow{err: pgx.ErrNoRows}, reservationRow(cancelled)}}

		_, err := NewReservationRepository(db, zap.NewNop()).Cancel(ctx, cancelled.ID, "again")

		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("database error", func(t *testing.T) {
		boom := errors.New("connection reset by peer")
		db := &fakeDB{rows: []pgx.Row{fakeRow{err: boom}}}

		_, err := NewReservationRepository(db, zap.NewNop()).Confirm(ctx, uuid.New())

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, apperror.Code(""), apperror.CodeOf(err))
		assert.Len(t, db.queries, 1)
	})
}
