package entity

import "github.com/google/uuid"

type Campground struct {
	Base
	Name     string `db:"name"`
	Location string `db:"location"`
}

// Site is a bookable pitch. Capacity guests are included in the nightly rate; each guest
// above it pays ExtraGuestFee per night, up to MaxGuests.
type Site struct {
	Base
	CampgroundID  uuid.UUID `db:"campground_id"`
	Name          string    `db:"name"`
	BaseRate      int64     `db:"base_rate"`
	Capacity      int       `db:"capacity"`
	MaxGuests     int       `db:"max_guests"`
	ExtraGuestFee int64     `db:"extra_guest_fee"`
}
