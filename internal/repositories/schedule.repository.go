package repositories

import (
	"context"
	"errors"
	"time"

	"raftwatch/internal/database"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *MaintenanceSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*MaintenanceSchedule, error)
	FindUpcoming(ctx context.Context, from, until time.Time) ([]*MaintenanceSchedule, error)
	FindOverdue(ctx context.Context, now time.Time) ([]*MaintenanceSchedule, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}

type scheduleRepository struct {
	db  database.DB
	log logger.Logger
}

func NewScheduleRepository(db database.DB) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: logger.New("scheduleRepository"),
	}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *MaintenanceSchedule) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(schedule).Error; err != nil {
		return log.Err("failed to create maintenance schedule", err, "title", schedule.Title)
	}

	return nil
}

func (r *scheduleRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*MaintenanceSchedule, error) {
	log := r.log.Function("GetByID")

	var schedule MaintenanceSchedule
	if err := r.db.SQLWithContext(ctx).
		Preload("Vessel").
		Preload("Raft").
		Preload("Cylinder").
		First(&schedule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get schedule by ID", err, "id", id)
	}

	return &schedule, nil
}

func (r *scheduleRepository) FindUpcoming(
	ctx context.Context,
	from, until time.Time,
) ([]*MaintenanceSchedule, error) {
	log := r.log.Function("FindUpcoming")

	var schedules []*MaintenanceSchedule
	if err := r.db.SQLWithContext(ctx).
		Preload("Vessel").
		Preload("Raft").
		Preload("Cylinder").
		Where("status = ?", ScheduleStatusScheduled).
		Where("next_due_at >= ? AND next_due_at <= ?", from, until).
		Order("next_due_at ASC").
		Find(&schedules).Error; err != nil {
		return nil, log.Err("failed to find upcoming schedules", err)
	}

	return schedules, nil
}

func (r *scheduleRepository) FindOverdue(
	ctx context.Context,
	now time.Time,
) ([]*MaintenanceSchedule, error) {
	log := r.log.Function("FindOverdue")

	var schedules []*MaintenanceSchedule
	if err := r.db.SQLWithContext(ctx).
		Preload("Vessel").
		Preload("Raft").
		Preload("Cylinder").
		Where("status = ? AND next_due_at < ?", ScheduleStatusScheduled, now).
		Order("next_due_at ASC").
		Find(&schedules).Error; err != nil {
		return nil, log.Err("failed to find overdue schedules", err)
	}

	return schedules, nil
}

func (r *scheduleRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("MarkDone")

	result := r.db.SQLWithContext(ctx).
		Model(&MaintenanceSchedule{}).
		Where("id = ?", id).
		Update("status", ScheduleStatusDone)
	if result.Error != nil {
		return log.Err("failed to mark schedule done", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
