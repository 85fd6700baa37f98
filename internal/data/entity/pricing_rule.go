package entity

import (
	"time"

	"github.com/google/uuid"
)

type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
	DayTypeAll     DayType = "all"
)

// Matches reports whether a rule of this day type applies to the night starting on d.
func (t DayType) Matches(d time.Time) bool {
	switch t {
	case DayTypeAll:
		return true
	case DayTypeWeekend:
		return IsWeekendNight(d)
	case DayTypeWeekday:
		return !IsWeekendNight(d)
	}
	return false
}

// PricingRule sets the nightly rate for a site. A rule with a Season is a seasonal override.
// Historical rules are never mutated; rate changes add new rules.
type PricingRule struct {
	BaseNoDelete
	SiteID      uuid.UUID  `db:"site_id"`
	Season      *DateRange `db:"-"`
	DayType     DayType    `db:"day_type"`
	NightlyRate int64      `db:"nightly_rate"`
}

func (r *PricingRule) IsSeasonal() bool {
	return r.Season != nil
}

type DiscountKind string

const (
	// DiscountMinNights applies when the stay has at least Threshold nights.
	DiscountMinNights DiscountKind = "min_nights"
	// DiscountEarlyBird applies when booked at least Threshold days before check-in.
	DiscountEarlyBird DiscountKind = "early_bird"
	// DiscountWeekdaysOnly applies when no night of the stay is a weekend night.
	DiscountWeekdaysOnly DiscountKind = "weekdays_only"
)

// DiscountRule is a percentage off the subtotal. SiteID nil means campground-wide.
type DiscountRule struct {
	BaseNoDelete
	CampgroundID uuid.UUID    `db:"campground_id"`
	SiteID       *uuid.UUID   `db:"site_id"`
	Description  string       `db:"description"`
	Percentage   int          `db:"percentage"`
	Kind         DiscountKind `db:"kind"`
	Threshold    int          `db:"threshold"`
	Position     int          `db:"position"`
	ValidFrom    *time.Time   `db:"valid_from"`
	ValidTo      *time.Time   `db:"valid_to"`
}
