package repository

import (
	"context"
	"fmt"
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingRuleRepository interface {
	FindBySite(ctx context.Context, siteID uuid.UUID) ([]*entity.PricingRule, error)
	FindDiscounts(ctx context.Context, campgroundID, siteID uuid.UUID) ([]*entity.DiscountRule, error)
}

type pricingRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingRuleRepository(db database.PgxIface, log *zap.Logger) PricingRuleRepository {
	return &pricingRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing_rule")),
	}
}

func (r *pricingRuleRepository) FindBySite(ctx context.Context, siteID uuid.UUID) ([]*entity.PricingRule, error) {
	query := `
		SELECT id, site_id, season_start, season_end, day_type, nightly_rate, created_at, updated_at
		FROM pricing_rules
		WHERE site_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, siteID)
	if err != nil {
		r.log.Error("Failed to find pricing rules by site",
			zap.Error(err),
			zap.String("site_id", siteID.String()),
		)
		return nil, fmt.Errorf("find pricing rules by site %s: %w", siteID.String(), err)
	}
	defer rows.Close()

	var rules []*entity.PricingRule
	for rows.Next() {
		var (
			rule        entity.PricingRule
			seasonStart *time.Time
			seasonEnd   *time.Time
		)
		err := rows.Scan(
			&rule.ID,
			&rule.SiteID,
			&seasonStart,
			&seasonEnd,
			&rule.DayType,
			&rule.NightlyRate,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pricing rule row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing rule row: %w", err)
		}
		if seasonStart != nil && seasonEnd != nil {
			rule.Season = &entity.DateRange{
				Start: entity.TruncateDate(*seasonStart),
				End:   entity.TruncateDate(*seasonEnd),
			}
		}
		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}

// FindDiscounts returns campground-wide discounts plus those scoped to siteID, in application order.
func (r *pricingRuleRepository) FindDiscounts(ctx context.Context, campgroundID, siteID uuid.UUID) ([]*entity.DiscountRule, error) {
	query := `
		SELECT id, campground_id, site_id, description, percentage, kind, threshold, position,
		       valid_from, valid_to, created_at, updated_at
		FROM discount_rules
		WHERE campground_id = $1 AND (site_id IS NULL OR site_id = $2)
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, campgroundID, siteID)
	if err != nil {
		r.log.Error("Failed to find discount rules",
			zap.Error(err),
			zap.String("campground_id", campgroundID.String()),
			zap.String("site_id", siteID.String()),
		)
		return nil, fmt.Errorf("find discount rules for site %s: %w", siteID.String(), err)
	}
	defer rows.Close()

	var rules []*entity.DiscountRule
	for rows.Next() {
		var rule entity.DiscountRule
		err := rows.Scan(
			&rule.ID,
			&rule.CampgroundID,
			&rule.SiteID,
			&rule.Description,
			&rule.Percentage,
			&rule.Kind,
			&rule.Threshold,
			&rule.Position,
			&rule.ValidFrom,
			&rule.ValidTo,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan discount rule row", zap.Error(err))
			return nil, fmt.Errorf("scan discount rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}
