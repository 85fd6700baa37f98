package entity

import (
	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Occupies reports whether a reservation in this status blocks its dates.
func (s ReservationStatus) Occupies() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// Reservation is never deleted; status transitions are the only mutation after creation.
type Reservation struct {
	BaseNoDelete
	Code           string            `db:"code"`
	SiteID         uuid.UUID         `db:"site_id"`
	CampgroundID   uuid.UUID         `db:"campground_id"`
	Stay           DateRange         `db:"-"`
	GuestCount     int               `db:"guest_count"`
	Status         ReservationStatus `db:"status"`
	TotalAmount    int64             `db:"total_amount"`
	Breakdown      *PriceBreakdown   `db:"breakdown"`
	IdempotencyKey *string           `db:"idempotency_key"`
	CancelReason   *string           `db:"cancel_reason"`
}

// AdmissionOutcome is the terminal state of one admission attempt.
type AdmissionOutcome string

const (
	OutcomeAdmitted              AdmissionOutcome = "ADMITTED"
	OutcomeRejectedConflict      AdmissionOutcome = "REJECTED_CONFLICT"
	OutcomeRejectedPriceMismatch AdmissionOutcome = "REJECTED_PRICE_MISMATCH"
	OutcomeRejectedInvalidRange  AdmissionOutcome = "REJECTED_INVALID_RANGE"
	OutcomeRejectedInvalidState  AdmissionOutcome = "REJECTED_INVALID_STATE"
)

type IntegrityEventKind string

const (
	IntegrityPriceMismatch IntegrityEventKind = "price_mismatch"
	IntegrityConfiguration IntegrityEventKind = "configuration"
)

// IntegrityEvent is a flagged pricing failure kept for operator review.
type IntegrityEvent struct {
	BaseNoDelete
	Kind          IntegrityEventKind `db:"kind"`
	SiteID        *uuid.UUID         `db:"site_id"`
	ReservationID *uuid.UUID         `db:"reservation_id"`
	Expected      *int64             `db:"expected_amount"`
	Actual        *int64             `db:"actual_amount"`
	Detail        string             `db:"detail"`
}
