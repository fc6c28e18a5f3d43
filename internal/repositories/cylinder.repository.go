package repositories

import (
	"context"
	"time"

	"raftwatch/internal/database"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
)

type CylinderRepository interface {
	FindDueForTest(ctx context.Context, now, until time.Time) ([]*Cylinder, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type cylinderRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCylinderRepository(db database.DB) CylinderRepository {
	return &cylinderRepository{
		db:  db,
		log: logger.New("cylinderRepository"),
	}
}

// FindDueForTest returns active cylinders whose next hydrostatic test falls
// inside the lookahead window: not yet expired but due by the limit date.
func (r *cylinderRepository) FindDueForTest(
	ctx context.Context,
	now, until time.Time,
) ([]*Cylinder, error) {
	log := r.log.Function("FindDueForTest")

	var cylinders []*Cylinder
	if err := r.db.SQLWithContext(ctx).
		Where("status = ?", CylinderStatusActive).
		Where("next_test_at > ? AND next_test_at <= ?", now, until).
		Find(&cylinders).Error; err != nil {
		return nil, log.Err("failed to find cylinders due for test", err)
	}

	return cylinders, nil
}

// ExpireOverdue transitions active cylinders whose test date is strictly in
// the past to expired. Returns the number of transitioned rows.
func (r *cylinderRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	log := r.log.Function("ExpireOverdue")

	result := r.db.SQLWithContext(ctx).
		Model(&Cylinder{}).
		Where("status = ? AND next_test_at < ?", CylinderStatusActive, now).
		Update("status", CylinderStatusExpired)
	if result.Error != nil {
		return 0, log.Err("failed to expire overdue cylinders", result.Error)
	}

	if result.RowsAffected > 0 {
		log.Info("Expired overdue cylinders", "count", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
