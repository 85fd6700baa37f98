package pricing

import (
	"sort"
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"
)

// Request is everything a price depends on. BookedOn only feeds date-based discount
// eligibility; passing it in keeps Compute a pure function.
type Request struct {
	Site      *entity.Site
	Stay      entity.DateRange
	Guests    int
	Rules     *RuleSet
	Discounts []*entity.DiscountRule
	BookedOn  time.Time
}

// Calculator produces day-by-day price breakdowns. It holds no state and is safe for
// concurrent use.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute prices a stay:
//  1. resolve a rate for every night
//  2. extra-guest fee = fee × (guests − capacity) × nights, as its own line
//  3. subtotal = nightly rates + extra-guest fee
//  4. every eligible discount, in rule position order, takes its percentage of the subtotal
//  5. total = subtotal − discounts
func (c *Calculator) Compute(req Request) (*entity.PriceBreakdown, error) {
	if req.Site == nil || req.Rules == nil {
		return nil, apperror.Configuration("price request is missing its site or rules")
	}
	if req.Rules.SiteID() != req.Site.ID {
		return nil, apperror.Configuration("rule set for site %s used to price site %s", req.Rules.SiteID(), req.Site.ID)
	}
	nights := req.Stay.Nights()
	if len(nights) == 0 {
		return nil, apperror.InvalidRange("stay %s has no nights", req.Stay)
	}
	if req.Guests < 1 {
		return nil, apperror.Validation("guest count must be at least 1, got %d", req.Guests)
	}

	breakdown := &entity.PriceBreakdown{
		DailyBreakdown:   make([]entity.DailyRate, 0, len(nights)),
		AppliedDiscounts: make([]entity.AppliedDiscount, 0),
	}

	var nightly int64
	for _, night := range nights {
		rate, err := req.Rules.ResolveRate(night)
		if err != nil {
			return nil, err
		}
		breakdown.DailyBreakdown = append(breakdown.DailyBreakdown, entity.DailyRate{
			Date:      night,
			DailyRate: rate,
			IsWeekend: entity.IsWeekendNight(night),
		})
		nightly += rate
	}

	if extra := req.Guests - req.Site.Capacity; extra > 0 {
		breakdown.ExtraGuestFee = req.Site.ExtraGuestFee * int64(extra) * int64(len(nights))
	}

	breakdown.Subtotal = nightly + breakdown.ExtraGuestFee

	discounts, err := orderedDiscounts(req.Discounts)
	if err != nil {
		return nil, err
	}
	for _, rule := range discounts {
		eligible, err := PredicateFor(rule)
		if err != nil {
			return nil, err
		}
		if !eligible(req.Stay, req.BookedOn) {
			continue
		}
		amount := breakdown.Subtotal * int64(rule.Percentage) / 100
		breakdown.AppliedDiscounts = append(breakdown.AppliedDiscounts, entity.AppliedDiscount{
			Description: rule.Description,
			Percentage:  rule.Percentage,
			Amount:      amount,
		})
		breakdown.TotalDiscount += amount
	}

	breakdown.TotalAmount = breakdown.Subtotal - breakdown.TotalDiscount
	if breakdown.TotalAmount < 0 {
		return nil, apperror.Configuration("discounts %d exceed subtotal %d for site %s stay %s",
			breakdown.TotalDiscount, breakdown.Subtotal, req.Site.ID, req.Stay)
	}

	return breakdown, nil
}

// orderedDiscounts returns the rules sorted by position, keeping input order for ties.
func orderedDiscounts(rules []*entity.DiscountRule) ([]*entity.DiscountRule, error) {
	out := make([]*entity.DiscountRule, 0, len(rules))
	for _, r := range rules {
		if r == nil {
			continue
		}
		if r.Percentage < 0 || r.Percentage > 100 {
			return nil, apperror.Configuration("discount %q has percentage %d outside 0..100", r.Description, r.Percentage)
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}
