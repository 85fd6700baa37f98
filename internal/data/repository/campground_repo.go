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

type CampgroundRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Campground, error)
}

type campgroundRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCampgroundRepository(db database.PgxIface, log *zap.Logger) CampgroundRepository {
	return &campgroundRepository{
		db:  db,
		log: log.With(zap.String("repository", "campground")),
	}
}

func (r *campgroundRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Campground, error) {
	query := `
		SELECT id, name, location, created_at, updated_at, deleted_at
		FROM campgrounds
		WHERE id = $1 AND deleted_at IS NULL
	`

	var campground entity.Campground
	err := r.db.QueryRow(ctx, query, id).Scan(
		&campground.ID,
		&campground.Name,
		&campground.Location,
		&campground.CreatedAt,
		&campground.UpdatedAt,
		&campground.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find campground by ID",
			zap.Error(err),
			zap.String("campground_id", id.String()),
		)
		return nil, fmt.Errorf("find campground by ID %s: %w", id.String(), err)
	}

	return &campground, nil
}
