package repositories

import (
	"context"
	"errors"
	"time"

	"raftwatch/internal/database"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InspectionRepository interface {
	GetLastNumber(ctx context.Context, prefix string) (string, error)
	Create(ctx context.Context, tx *gorm.DB, record *InspectionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*InspectionRecord, error)
	AddCost(ctx context.Context, cost *InspectionCost) error
	GetCosts(ctx context.Context, inspectionID uuid.UUID) ([]*InspectionCost, error)
	AddHistory(ctx context.Context, tx *gorm.DB, entry *InspectionHistory) error
	GetHistory(ctx context.Context, inspectionID uuid.UUID) ([]*InspectionHistory, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status InspectionStatus) error
	FindOverdue(ctx context.Context, now time.Time) ([]*InspectionRecord, error)
	FindPerformedSince(
		ctx context.Context,
		since time.Time,
		ref EquipmentRef,
	) ([]*InspectionRecord, error)
	CountAll(ctx context.Context, ref EquipmentRef) (int64, error)
	CountByOutcome(ctx context.Context, ref EquipmentRef, outcome InspectionOutcome) (int64, error)
	CountOverdue(ctx context.Context, ref EquipmentRef, now time.Time) (int64, error)
	SumCosts(ctx context.Context, ref EquipmentRef) (decimal.Decimal, error)
}

type inspectionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewInspectionRepository(db database.DB) InspectionRepository {
	return &inspectionRepository{
		db:  db,
		log: logger.New("inspectionRepository"),
	}
}

// GetLastNumber returns the highest persisted display number for a prefix.
// Returns an empty string when no record exists yet.
func (r *inspectionRepository) GetLastNumber(ctx context.Context, prefix string) (string, error) {
	log := r.log.Function("GetLastNumber")

	var record InspectionRecord
	err := r.db.SQLWithContext(ctx).
		Select("number").
		Where("number LIKE ?", prefix+"-%").
		Order("number DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", log.Err("failed to get last inspection number", err, "prefix", prefix)
	}

	return record.Number, nil
}

// Create persists a record on the provided transaction handle so the caller
// can bundle it with its history snapshot. Duplicate display numbers surface
// as gorm.ErrDuplicatedKey for the allocation retry loop.
func (r *inspectionRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	record *InspectionRecord,
) error {
	log := r.log.Function("Create")

	if err := tx.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return log.Err("failed to create inspection record", err, "number", record.Number)
	}

	return nil
}

func (r *inspectionRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*InspectionRecord, error) {
	log := r.log.Function("GetByID")

	var record InspectionRecord
	if err := r.db.SQLWithContext(ctx).
		Preload("Costs").
		Preload("History").
		Preload("Vessel").
		Preload("Raft").
		Preload("Cylinder").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get inspection by ID", err, "id", id)
	}

	return &record, nil
}

func (r *inspectionRepository) AddCost(ctx context.Context, cost *InspectionCost) error {
	log := r.log.Function("AddCost")

	if err := r.db.SQLWithContext(ctx).Create(cost).Error; err != nil {
		return log.Err("failed to add inspection cost", err, "inspectionId", cost.InspectionID)
	}

	return nil
}

func (r *inspectionRepository) GetCosts(
	ctx context.Context,
	inspectionID uuid.UUID,
) ([]*InspectionCost, error) {
	log := r.log.Function("GetCosts")

	var costs []*InspectionCost
	if err := r.db.SQLWithContext(ctx).
		Where("inspection_id = ?", inspectionID).
		Order("created_at ASC").
		Find(&costs).Error; err != nil {
		return nil, log.Err("failed to get inspection costs", err, "inspectionId", inspectionID)
	}

	return costs, nil
}

func (r *inspectionRepository) AddHistory(
	ctx context.Context,
	tx *gorm.DB,
	entry *InspectionHistory,
) error {
	log := r.log.Function("AddHistory")

	if err := tx.Create(entry).Error; err != nil {
		return log.Err("failed to add history entry", err, "inspectionId", entry.InspectionID)
	}

	return nil
}

func (r *inspectionRepository) GetHistory(
	ctx context.Context,
	inspectionID uuid.UUID,
) ([]*InspectionHistory, error) {
	log := r.log.Function("GetHistory")

	var entries []*InspectionHistory
	if err := r.db.SQLWithContext(ctx).
		Where("inspection_id = ?", inspectionID).
		Order("performed_at DESC").
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to get inspection history", err, "inspectionId", inspectionID)
	}

	return entries, nil
}

func (r *inspectionRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status InspectionStatus,
) error {
	log := r.log.Function("UpdateStatus")

	result := r.db.SQLWithContext(ctx).
		Model(&InspectionRecord{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update inspection status", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *inspectionRepository) FindOverdue(
	ctx context.Context,
	now time.Time,
) ([]*InspectionRecord, error) {
	log := r.log.Function("FindOverdue")

	var records []*InspectionRecord
	if err := r.db.SQLWithContext(ctx).
		Preload("Vessel").
		Preload("Raft").
		Preload("Cylinder").
		Where("next_due_at < ? AND status <> ?", now, InspectionStatusCancelled).
		Order("next_due_at ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to find overdue inspections", err)
	}

	return records, nil
}

func (r *inspectionRepository) FindPerformedSince(
	ctx context.Context,
	since time.Time,
	ref EquipmentRef,
) ([]*InspectionRecord, error) {
	log := r.log.Function("FindPerformedSince")

	query := r.db.SQLWithContext(ctx).
		Preload("Costs").
		Where("performed_at >= ?", since)
	query = applyEquipmentFilter(query, ref)

	var records []*InspectionRecord
	if err := query.Order("performed_at ASC").Find(&records).Error; err != nil {
		return nil, log.Err("failed to find inspections", err, "since", since)
	}

	return records, nil
}

func (r *inspectionRepository) CountAll(ctx context.Context, ref EquipmentRef) (int64, error) {
	log := r.log.Function("CountAll")

	var count int64
	query := applyEquipmentFilter(r.db.SQLWithContext(ctx).Model(&InspectionRecord{}), ref)
	if err := query.Count(&count).Error; err != nil {
		return 0, log.Err("failed to count inspections", err)
	}

	return count, nil
}

func (r *inspectionRepository) CountByOutcome(
	ctx context.Context,
	ref EquipmentRef,
	outcome InspectionOutcome,
) (int64, error) {
	log := r.log.Function("CountByOutcome")

	var count int64
	query := applyEquipmentFilter(r.db.SQLWithContext(ctx).Model(&InspectionRecord{}), ref).
		Where("outcome = ?", outcome)
	if err := query.Count(&count).Error; err != nil {
		return 0, log.Err("failed to count inspections by outcome", err, "outcome", outcome)
	}

	return count, nil
}

func (r *inspectionRepository) CountOverdue(
	ctx context.Context,
	ref EquipmentRef,
	now time.Time,
) (int64, error) {
	log := r.log.Function("CountOverdue")

	var count int64
	query := applyEquipmentFilter(r.db.SQLWithContext(ctx).Model(&InspectionRecord{}), ref).
		Where("next_due_at < ?", now)
	if err := query.Count(&count).Error; err != nil {
		return 0, log.Err("failed to count overdue inspections", err)
	}

	return count, nil
}

func (r *inspectionRepository) SumCosts(
	ctx context.Context,
	ref EquipmentRef,
) (decimal.Decimal, error) {
	log := r.log.Function("SumCosts")

	subQuery := applyEquipmentFilter(
		r.db.SQLWithContext(ctx).Model(&InspectionRecord{}).Select("id"),
		ref,
	)

	var total decimal.NullDecimal
	if err := r.db.SQLWithContext(ctx).
		Model(&InspectionCost{}).
		Select("SUM(unit_value * quantity)").
		Where("inspection_id IN (?)", subQuery).
		Scan(&total).Error; err != nil {
		return decimal.Zero, log.Err("failed to sum inspection costs", err)
	}

	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func applyEquipmentFilter(query *gorm.DB, ref EquipmentRef) *gorm.DB {
	if ref.VesselID != nil {
		query = query.Where("vessel_id = ?", *ref.VesselID)
	}
	if ref.RaftID != nil {
		query = query.Where("raft_id = ?", *ref.RaftID)
	}
	if ref.CylinderID != nil {
		query = query.Where("cylinder_id = ?", *ref.CylinderID)
	}
	return query
}
