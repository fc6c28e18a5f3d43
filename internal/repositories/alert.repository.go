package repositories

import (
	"context"
	"time"

	"raftwatch/internal/database"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"

	"github.com/google/uuid"
)

type AlertFilter struct {
	Severity *AlertSeverity
	Read     *bool
	ClientID *uuid.UUID
	Search   string
	Page     int
	Limit    int
}

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	CountRecent(
		ctx context.Context,
		ref EquipmentRef,
		severity AlertSeverity,
		titlePrefix string,
		since time.Time,
	) (int64, error)
	List(ctx context.Context, filter AlertFilter) ([]*Alert, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
	CountUnreadBySeverity(ctx context.Context, severity AlertSeverity, since time.Time) (int64, error)
	RecentUnread(ctx context.Context, limit int) ([]*Alert, error)
}

type alertRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAlertRepository(db database.DB) AlertRepository {
	return &alertRepository{
		db:  db,
		log: logger.New("alertRepository"),
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *Alert) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(alert).Error; err != nil {
		return log.Err("failed to create alert", err, "title", alert.Title)
	}

	return nil
}

func (r *alertRepository) CountRecent(
	ctx context.Context,
	ref EquipmentRef,
	severity AlertSeverity,
	titlePrefix string,
	since time.Time,
) (int64, error) {
	log := r.log.Function("CountRecent")

	query := r.db.SQLWithContext(ctx).
		Model(&Alert{}).
		Where("severity = ?", severity).
		Where("title LIKE ?", titlePrefix+"%").
		Where("created_at >= ?", since)

	if ref.VesselID != nil {
		query = query.Where("vessel_id = ?", *ref.VesselID)
	}
	if ref.RaftID != nil {
		query = query.Where("raft_id = ?", *ref.RaftID)
	}
	if ref.CylinderID != nil {
		query = query.Where("cylinder_id = ?", *ref.CylinderID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, log.Err("failed to count recent alerts", err, "titlePrefix", titlePrefix)
	}

	return count, nil
}

func (r *alertRepository) List(ctx context.Context, filter AlertFilter) ([]*Alert, int64, error) {
	log := r.log.Function("List")

	query := r.db.SQLWithContext(ctx).Model(&Alert{})

	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	if filter.Read != nil {
		query = query.Where("read = ?", *filter.Read)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR message ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, log.Err("failed to count alerts", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var alerts []*Alert
	if err := query.
		Preload("Vessel").
		Preload("Raft").
		Preload("Cylinder").
		Order("sent_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&alerts).Error; err != nil {
		return nil, 0, log.Err("failed to list alerts", err)
	}

	return alerts, total, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("MarkRead")

	result := r.db.SQLWithContext(ctx).
		Model(&Alert{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return log.Err("failed to mark alert as read", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.Err("alert not found", ErrNotFound, "id", id)
	}

	return nil
}

func (r *alertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&Alert{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete alert", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.Err("alert not found", ErrNotFound, "id", id)
	}

	return nil
}

func (r *alertRepository) CountUnread(ctx context.Context) (int64, error) {
	log := r.log.Function("CountUnread")

	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&Alert{}).
		Where("read = ?", false).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count unread alerts", err)
	}

	return count, nil
}

func (r *alertRepository) CountUnreadBySeverity(
	ctx context.Context,
	severity AlertSeverity,
	since time.Time,
) (int64, error) {
	log := r.log.Function("CountUnreadBySeverity")

	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&Alert{}).
		Where("read = ? AND severity = ? AND sent_at >= ?", false, severity, since).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count unread alerts by severity", err, "severity", severity)
	}

	return count, nil
}

func (r *alertRepository) RecentUnread(ctx context.Context, limit int) ([]*Alert, error) {
	log := r.log.Function("RecentUnread")

	var alerts []*Alert
	if err := r.db.SQLWithContext(ctx).
		Where("read = ?", false).
		Order("sent_at DESC").
		Limit(limit).
		Find(&alerts).Error; err != nil {
		return nil, log.Err("failed to get recent unread alerts", err)
	}

	return alerts, nil
}
