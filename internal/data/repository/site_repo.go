package repository

import (
	"context"
	"fmt"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error)
	FindByCampground(ctx context.Context, campgroundID uuid.UUID) ([]*entity.Site, error)
}

type siteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSiteRepository(db database.PgxIface, log *zap.Logger) SiteRepository {
	return &siteRepository{
		db:  db,
		log: log.With(zap.String("repository", "site")),
	}
}

const siteColumns = `id, campground_id, name, base_rate, capacity, max_guests, extra_guest_fee, created_at, updated_at, deleted_at`

func scanSite(row pgx.Row) (*entity.Site, error) {
	var site entity.Site
	err := row.Scan(
		&site.ID,
		&site.CampgroundID,
		&site.Name,
		&site.BaseRate,
		&site.Capacity,
		&site.MaxGuests,
		&site.ExtraGuestFee,
		&site.CreatedAt,
		&site.UpdatedAt,
		&site.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1 AND deleted_at IS NULL`

	site, err := scanSite(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find site by ID",
			zap.Error(err),
			zap.String("site_id", id.String()),
		)
		return nil, fmt.Errorf("find site by ID %s: %w", id.String(), err)
	}

	return site, nil
}

func (r *siteRepository) FindByCampground(ctx context.Context, campgroundID uuid.UUID) ([]*entity.Site, error) {
	query := `
		SELECT ` + siteColumns + `
		FROM sites
		WHERE campground_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query, campgroundID)
	if err != nil {
		r.log.Error("Failed to find sites by campground",
			zap.Error(err),
			zap.String("campground_id", campgroundID.String()),
		)
		return nil, fmt.Errorf("find sites by campground %s: %w", campgroundID.String(), err)
	}
	defer rows.Close()

	var sites []*entity.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			r.log.Error("Failed to scan site row", zap.Error(err))
			return nil, fmt.Errorf("scan site row: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}
