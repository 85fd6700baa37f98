package pricing

import (
	"time"

	"campground-booking/internal/data/entity"

	"github.com/google/uuid"
)

// exampleSite: base 50,000/night, weekend 70,000/night, 4 included guests, 10,000 per extra guest per night.
func exampleSite() (*entity.Site, []*entity.PricingRule) {
	site := &entity.Site{
		Base:          entity.Base{ID: uuid.New()},
		CampgroundID:  uuid.New(),
		Name:          "Riverside A-1",
		BaseRate:      50000,
		Capacity:      4,
		MaxGuests:     8,
		ExtraGuestFee: 10000,
	}
	rules := []*entity.PricingRule{
		{SiteID: site.ID, DayType: entity.DayTypeWeekend, NightlyRate: 70000},
	}
	return site, rules
}

func season(from, to time.Time) *entity.DateRange {
	return &entity.DateRange{Start: from, End: to}
}

func longStay(position int) *entity.DiscountRule {
	return &entity.DiscountRule{
		Description: "Long stay 10%",
		Percentage:  10,
		Kind:        entity.DiscountMinNights,
		Threshold:   7,
		Position:    position,
	}
}
