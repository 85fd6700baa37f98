package pricing

import (
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/apperror"

	"github.com/google/uuid"
)

// RuleSet resolves exactly one nightly rate per calendar date for a single site.
// It holds copies of the rules, so later edits to the source rules do not leak into it.
type RuleSet struct {
	siteID   uuid.UUID
	seasonal []entity.PricingRule
	generic  []entity.PricingRule
}

// NewRuleSet builds the rule set for site. The site's base rate becomes a generic
// all-days rule; rules that belong to other sites are ignored.
func NewRuleSet(site *entity.Site, rules []*entity.PricingRule) *RuleSet {
	rs := &RuleSet{siteID: site.ID}

	if site.BaseRate > 0 {
		rs.generic = append(rs.generic, entity.PricingRule{
			SiteID:      site.ID,
			DayType:     entity.DayTypeAll,
			NightlyRate: site.BaseRate,
		})
	}

	for _, rule := range rules {
		if rule == nil || rule.SiteID != site.ID {
			continue
		}
		r := *rule
		if r.Season != nil {
			season := *r.Season
			r.Season = &season
			rs.seasonal = append(rs.seasonal, r)
			continue
		}
		rs.generic = append(rs.generic, r)
	}

	return rs
}

func (rs *RuleSet) SiteID() uuid.UUID {
	return rs.siteID
}

// ResolveRate picks the most specific rule for the night starting on date.
// Seasonal overrides win over generic rules; within each group a weekday/weekend rule
// wins over an all-days rule, and for seasonal rules a narrower window wins.
// No match, or a tie between different rates, is a configuration error.
func (rs *RuleSet) ResolveRate(date time.Time) (int64, error) {
	date = entity.TruncateDate(date)

	var seasonal []entity.PricingRule
	for _, r := range rs.seasonal {
		if r.Season.Contains(date) && r.DayType.Matches(date) {
			seasonal = append(seasonal, r)
		}
	}
	if len(seasonal) > 0 {
		return rs.pick(date, seasonal, true)
	}

	var generic []entity.PricingRule
	for _, r := range rs.generic {
		if r.DayType.Matches(date) {
			generic = append(generic, r)
		}
	}
	if len(generic) > 0 {
		return rs.pick(date, generic, false)
	}

	return 0, apperror.Configuration("no pricing rule resolves for site %s on %s",
		rs.siteID, date.Format(entity.DateLayout))
}

func (rs *RuleSet) pick(date time.Time, candidates []entity.PricingRule, seasonal bool) (int64, error) {
	best := candidates[:0:0]
	bestScore := -1
	for _, r := range candidates {
		score := specificity(r, seasonal)
		switch {
		case score > bestScore:
			best = append(best[:0], r)
			bestScore = score
		case score == bestScore:
			best = append(best, r)
		}
	}

	rate := best[0].NightlyRate
	for _, r := range best[1:] {
		if r.NightlyRate != rate {
			return 0, apperror.Configuration("ambiguous pricing rules for site %s on %s: %d vs %d",
				rs.siteID, date.Format(entity.DateLayout), rate, r.NightlyRate)
		}
	}
	if rate < 0 {
		return 0, apperror.Configuration("negative nightly rate %d for site %s on %s",
			rate, rs.siteID, date.Format(entity.DateLayout))
	}
	return rate, nil
}

// maxSeasonNights bounds the window-length bonus so day-type specificity always dominates.
const maxSeasonNights = 1 << 20

func specificity(r entity.PricingRule, seasonal bool) int {
	score := 0
	if r.DayType != entity.DayTypeAll {
		score += 2 * maxSeasonNights
	}
	if seasonal {
		n := r.Season.NightCount()
		if n > maxSeasonNights {
			n = maxSeasonNights
		}
		score += maxSeasonNights - n
	}
	return score
}
