package pricing

import (
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"
)

// Predicate decides whether a discount applies to a stay booked on bookedOn.
type Predicate func(stay entity.DateRange, bookedOn time.Time) bool

// PredicateFor turns a discount rule into its eligibility predicate, including the
// rule's validity window on the check-in date.
func PredicateFor(rule *entity.DiscountRule) (Predicate, error) {
	var kind Predicate

	switch rule.Kind {
	case entity.DiscountMinNights:
		kind = func(stay entity.DateRange, _ time.Time) bool {
			return stay.NightCount() >= rule.Threshold
		}
	case entity.DiscountEarlyBird:
		kind = func(stay entity.DateRange, bookedOn time.Time) bool {
			if bookedOn.IsZero() {
				return false
			}
			lead := int(stay.Start.Sub(entity.TruncateDate(bookedOn)).Hours() / 24)
			return lead >= rule.Threshold
		}
	case entity.DiscountWeekdaysOnly:
		kind = func(stay entity.DateRange, _ time.Time) bool {
			for _, night := range stay.Nights() {
				if entity.IsWeekendNight(night) {
					return false
				}
			}
			return true
		}
	default:
		return nil, apperror.Configuration("discount %q has unknown kind %q", rule.Description, rule.Kind)
	}

	return func(stay entity.DateRange, bookedOn time.Time) bool {
		if rule.ValidFrom != nil && stay.Start.Before(entity.TruncateDate(*rule.ValidFrom)) {
			return false
		}
		if rule.ValidTo != nil && stay.Start.After(entity.TruncateDate(*rule.ValidTo)) {
			return false
		}
		return kind(stay, bookedOn)
	}, nil
}
