package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campground-booking/internal/availability"
	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"

	idempotencyKeyConstraint = "reservations_idempotency_key_key"
)

// ReservationRepository is the Postgres availability index. Check-and-insert runs in one
// transaction holding a per-site advisory lock, and the reservations_no_overlap exclusion
// constraint rejects any overlap that slips past it.
type ReservationRepository interface {
	availability.Index
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

var _ availability.Index = (*reservationRepository)(nil)

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, code, site_id, campground_id, check_in, check_out, guest_count, status,
	total_amount, breakdown, idempotency_key, cancel_reason, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var (
		res       entity.Reservation
		breakdown []byte
	)
	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.SiteID,
		&res.CampgroundID,
		&res.Stay.Start,
		&res.Stay.End,
		&res.GuestCount,
		&res.Status,
		&res.TotalAmount,
		&breakdown,
		&res.IdempotencyKey,
		&res.CancelReason,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Stay.Start = entity.TruncateDate(res.Stay.Start)
	res.Stay.End = entity.TruncateDate(res.Stay.End)
	if len(breakdown) > 0 {
		res.Breakdown = &entity.PriceBreakdown{}
		if err := json.Unmarshal(breakdown, res.Breakdown); err != nil {
			return nil, fmt.Errorf("decode breakdown of reservation %s: %w", res.ID, err)
		}
	}
	return &res, nil
}

func (r *reservationRepository) CheckConflict(ctx context.Context, siteID uuid.UUID, stay entity.DateRange) (bool, error) {
	conflict, err := overlapExists(ctx, r.db, siteID, stay)
	if err != nil {
		r.log.Error("Failed to check reservation conflict",
			zap.Error(err),
			zap.String("site_id", siteID.String()),
			zap.String("stay", stay.String()),
		)
		return false, fmt.Errorf("check conflict for site %s: %w", siteID.String(), err)
	}
	return conflict, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func overlapExists(ctx context.Context, q queryRower, siteID uuid.UUID, stay entity.DateRange) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE site_id = $1
			  AND status <> 'cancelled'
			  AND check_in < $3
			  AND $2 < check_out
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, siteID, stay.Start, stay.End).Scan(&exists)
	return exists, err
}

func (r *reservationRepository) Insert(ctx context.Context, res *entity.Reservation) error {
	fields := []zap.Field{
		zap.String("reservation_id", res.ID.String()),
		zap.String("site_id", res.SiteID.String()),
		zap.String("stay", res.Stay.String()),
	}

	var breakdown []byte
	if res.Breakdown != nil {
		var err error
		if breakdown, err = json.Marshal(res.Breakdown); err != nil {
			return fmt.Errorf("encode breakdown of reservation %s: %w", res.ID, err)
		}
	}

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := database.LockKey(ctx, tx, res.SiteID.String()); err != nil {
			return fmt.Errorf("lock site %s: %w", res.SiteID, err)
		}

		conflict, err := overlapExists(ctx, tx, res.SiteID, res.Stay)
		if err != nil {
			return fmt.Errorf("check conflict for site %s: %w", res.SiteID, err)
		}
		if conflict {
			return apperror.Conflict("site %s is already reserved within %s", res.SiteID, res.Stay)
		}

		query := `
			INSERT INTO reservations (` + reservationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`
		_, err = tx.Exec(ctx, query,
			res.ID,
			res.Code,
			res.SiteID,
			res.CampgroundID,
			res.Stay.Start,
			res.Stay.End,
			res.GuestCount,
			res.Status,
			res.TotalAmount,
			breakdown,
			res.IdempotencyKey,
			res.CancelReason,
			res.CreatedAt,
			res.UpdatedAt,
		)
		if err != nil {
			return insertError(res, err)
		}
		return nil
	})
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeConflict {
			return err
		}
		r.log.Error("Failed to insert reservation", append(fields, zap.Error(err))...)
		return fmt.Errorf("insert reservation %s: %w", res.Code, err)
	}

	return nil
}

// insertError maps constraint violations that mean "someone else got there first" to CONFLICT.
func insertError(res *entity.Reservation, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgExclusionViolation:
		return apperror.New(apperror.CodeConflict,
			fmt.Sprintf("site %s is already reserved within %s", res.SiteID, res.Stay), pgErr)
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == idempotencyKeyConstraint:
		return apperror.New(apperror.CodeConflict, "idempotency key already used", pgErr)
	}
	return err
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE idempotency_key = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by idempotency key",
			zap.Error(err),
			zap.String("idempotency_key", key),
		)
		return nil, fmt.Errorf("find reservation by idempotency key: %w", err)
	}

	return res, nil
}

func (r *reservationRepository) Confirm(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + reservationColumns

	return r.transition(ctx, "confirm", id, query, id)
}

func (r *reservationRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) (*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'cancelled', cancel_reason = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
		RETURNING ` + reservationColumns

	return r.transition(ctx, "cancel", id, query, id, reason)
}

// transition runs a guarded status update. When the guard matches nothing it tells a
// missing reservation apart from one in the wrong state.
func (r *reservationRepository) transition(ctx context.Context, action string, id uuid.UUID, query string, args ...any) (*entity.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, query, args...))
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("action", action),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("%s reservation %s: %w", action, id.String(), err)
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NotFound("reservation %s not found", id)
	}
	return nil, apperror.InvalidState("cannot %s reservation %s in status %s", action, id, current.Status)
}

func (r *reservationRepository) ExpirePending(ctx context.Context, cutoff time.Time, reason string) ([]*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'cancelled', cancel_reason = NULLIF($2, ''), updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1
		RETURNING ` + reservationColumns

	rows, err := r.db.Query(ctx, query, cutoff, reason)
	if err != nil {
		r.log.Error("Failed to expire pending reservations",
			zap.Error(err),
			zap.Time("cutoff", cutoff),
		)
		return nil, fmt.Errorf("expire pending reservations: %w", err)
	}
	defer rows.Close()

	var expired []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		expired = append(expired, res)
	}

	return expired, rows.Err()
}

func (r *reservationRepository) ReservedRanges(ctx context.Context, siteIDs []uuid.UUID) (map[uuid.UUID][]entity.DateRange, error) {
	out := make(map[uuid.UUID][]entity.DateRange, len(siteIDs))
	for _, id := range siteIDs {
		out[id] = make([]entity.DateRange, 0)
	}
	if len(siteIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT site_id, check_in, check_out
		FROM reservations
		WHERE site_id = ANY($1::uuid[]) AND status <> 'cancelled'
		ORDER BY site_id, check_in
	`

	rows, err := r.db.Query(ctx, query, siteIDs)
	if err != nil {
		r.log.Error("Failed to find reserved ranges",
			zap.Error(err),
			zap.Int("site_count", len(siteIDs)),
		)
		return nil, fmt.Errorf("find reserved ranges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			siteID uuid.UUID
			stay   entity.DateRange
		)
		if err := rows.Scan(&siteID, &stay.Start, &stay.End); err != nil {
			r.log.Error("Failed to scan reserved range row", zap.Error(err))
			return nil, fmt.Errorf("scan reserved range row: %w", err)
		}
		stay.Start = entity.TruncateDate(stay.Start)
		stay.End = entity.TruncateDate(stay.End)
		out[siteID] = append(out[siteID], stay)
	}

	return out, rows.Err()
}
