package repository

import (
	"context"
	"fmt"

	"campground-booking/internal/data/entity"
	"campground-booking/pkg/database"

	"go.uber.org/zap"
)

type IntegrityEventRepository interface {
	Create(ctx context.Context, event *entity.IntegrityEvent) error
}

type integrityEventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewIntegrityEventRepository(db database.PgxIface, log *zap.Logger) IntegrityEventRepository {
	return &integrityEventRepository{
		db:  db,
		log: log.With(zap.String("repository", "integrity_event")),
	}
}

func (r *integrityEventRepository) Create(ctx context.Context, event *entity.IntegrityEvent) error {
	query := `
		INSERT INTO integrity_events (id, kind, site_id, reservation_id, expected_amount, actual_amount, detail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Kind,
		event.SiteID,
		event.ReservationID,
		event.Expected,
		event.Actual,
		event.Detail,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create integrity event",
			zap.Error(err),
			zap.String("kind", string(event.Kind)),
		)
		return fmt.Errorf("create integrity event %s: %w", event.Kind, err)
	}

	return nil
}
