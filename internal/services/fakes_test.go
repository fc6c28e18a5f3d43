package services

import (
	"context"
	"strings"
	"time"

	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. Error fields inject failures for the paths
// under test; everything else behaves like the real store.

func testLogger() logger.Logger {
	return logger.New("test")
}

type fakeAlertRepo struct {
	alerts    []*Alert
	createErr error
	countErr  error
}

func (f *fakeAlertRepo) Create(ctx context.Context, alert *Alert) error {
	if f.createErr != nil {
		return f.createErr
	}
	alert.ID = uuid.New()
	alert.CreatedAt = alert.SentAt
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertRepo) CountRecent(
	ctx context.Context,
	ref EquipmentRef,
	severity AlertSeverity,
	titlePrefix string,
	since time.Time,
) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var count int64
	for _, a := range f.alerts {
		if a.Severity != severity || !strings.HasPrefix(a.Title, titlePrefix) {
			continue
		}
		if a.CreatedAt.Before(since) {
			continue
		}
		if ref.VesselID != nil && (a.VesselID == nil || *a.VesselID != *ref.VesselID) {
			continue
		}
		if ref.RaftID != nil && (a.RaftID == nil || *a.RaftID != *ref.RaftID) {
			continue
		}
		if ref.CylinderID != nil && (a.CylinderID == nil || *a.CylinderID != *ref.CylinderID) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeAlertRepo) List(
	ctx context.Context,
	filter repositories.AlertFilter,
) ([]*Alert, int64, error) {
	return f.alerts, int64(len(f.alerts)), nil
}

func (f *fakeAlertRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	for _, a := range f.alerts {
		if a.ID == id {
			a.Read = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeAlertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, a := range f.alerts {
		if a.ID == id {
			f.alerts = append(f.alerts[:i], f.alerts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeAlertRepo) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	for _, a := range f.alerts {
		if !a.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeAlertRepo) CountUnreadBySeverity(
	ctx context.Context,
	severity AlertSeverity,
	since time.Time,
) (int64, error) {
	var count int64
	for _, a := range f.alerts {
		if !a.Read && a.Severity == severity && !a.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeAlertRepo) RecentUnread(ctx context.Context, limit int) ([]*Alert, error) {
	unread := make([]*Alert, 0, limit)
	for i := len(f.alerts) - 1; i >= 0 && len(unread) < limit; i-- {
		if !f.alerts[i].Read {
			unread = append(unread, f.alerts[i])
		}
	}
	return unread, nil
}

type fakeCylinderRepo struct {
	due        []*Cylinder
	expired    int64
	findErr    error
	expireErr  error
	expireCall int
}

func (f *fakeCylinderRepo) FindDueForTest(
	ctx context.Context,
	now, until time.Time,
) ([]*Cylinder, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.due, nil
}

func (f *fakeCylinderRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	f.expireCall++
	if f.expireErr != nil {
		return 0, f.expireErr
	}
	return f.expired, nil
}

type fakeStockRepo struct {
	below   []*StockItem
	findErr error
}

func (f *fakeStockRepo) FindBelowMinimum(ctx context.Context) ([]*StockItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.below, nil
}

type fakeScheduleRepo struct {
	upcoming  []*MaintenanceSchedule
	schedules map[uuid.UUID]*MaintenanceSchedule
	done      []uuid.UUID
	findErr   error
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *MaintenanceSchedule) error {
	if f.schedules == nil {
		f.schedules = make(map[uuid.UUID]*MaintenanceSchedule)
	}
	schedule.ID = uuid.New()
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*MaintenanceSchedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeScheduleRepo) FindUpcoming(
	ctx context.Context,
	from, until time.Time,
) ([]*MaintenanceSchedule, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []*MaintenanceSchedule
	for _, s := range f.upcoming {
		if !s.NextDueAt.Before(from) && !s.NextDueAt.After(until) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeScheduleRepo) FindOverdue(
	ctx context.Context,
	now time.Time,
) ([]*MaintenanceSchedule, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matched []*MaintenanceSchedule
	for _, s := range f.upcoming {
		if s.NextDueAt.Before(now) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeScheduleRepo) MarkDone(ctx context.Context, id uuid.UUID) error {
	f.done = append(f.done, id)
	return nil
}

type fakeInspectionRepo struct {
	overdue        []*InspectionRecord
	performed      []*InspectionRecord
	records        map[uuid.UUID]*InspectionRecord
	costs          map[uuid.UUID][]*InspectionCost
	history        []*InspectionHistory
	lastNumber     string
	createErrs     []error // consumed per Create call, nil entry means success
	createCalls    int
	findOverdueErr error
}

func (f *fakeInspectionRepo) GetLastNumber(ctx context.Context, prefix string) (string, error) {
	return f.lastNumber, nil
}

func (f *fakeInspectionRepo) Create(
	ctx context.Context,
	tx *gorm.DB,
	record *InspectionRecord,
) error {
	call := f.createCalls
	f.createCalls++
	if call < len(f.createErrs) && f.createErrs[call] != nil {
		return f.createErrs[call]
	}
	if f.records == nil {
		f.records = make(map[uuid.UUID]*InspectionRecord)
	}
	record.ID = uuid.New()
	f.records[record.ID] = record
	f.lastNumber = record.Number
	return nil
}

func (f *fakeInspectionRepo) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*InspectionRecord, error) {
	if r, ok := f.records[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInspectionRepo) AddCost(ctx context.Context, cost *InspectionCost) error {
	if f.costs == nil {
		f.costs = make(map[uuid.UUID][]*InspectionCost)
	}
	f.costs[cost.InspectionID] = append(f.costs[cost.InspectionID], cost)
	return nil
}

func (f *fakeInspectionRepo) GetCosts(
	ctx context.Context,
	inspectionID uuid.UUID,
) ([]*InspectionCost, error) {
	return f.costs[inspectionID], nil
}

func (f *fakeInspectionRepo) AddHistory(
	ctx context.Context,
	tx *gorm.DB,
	entry *InspectionHistory,
) error {
	f.history = append(f.history, entry)
	return nil
}

func (f *fakeInspectionRepo) GetHistory(
	ctx context.Context,
	inspectionID uuid.UUID,
) ([]*InspectionHistory, error) {
	var entries []*InspectionHistory
	for _, h := range f.history {
		if h.InspectionID == inspectionID {
			entries = append(entries, h)
		}
	}
	return entries, nil
}

func (f *fakeInspectionRepo) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status InspectionStatus,
) error {
	if r, ok := f.records[id]; ok {
		r.Status = status
		return nil
	}
	return repositories.ErrNotFound
}

func (f *fakeInspectionRepo) FindOverdue(
	ctx context.Context,
	now time.Time,
) ([]*InspectionRecord, error) {
	if f.findOverdueErr != nil {
		return nil, f.findOverdueErr
	}
	return f.overdue, nil
}

func (f *fakeInspectionRepo) FindPerformedSince(
	ctx context.Context,
	since time.Time,
	ref EquipmentRef,
) ([]*InspectionRecord, error) {
	var matched []*InspectionRecord
	for _, r := range f.performed {
		if r.PerformedAt.Before(since) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func (f *fakeInspectionRepo) CountAll(ctx context.Context, ref EquipmentRef) (int64, error) {
	return int64(len(f.performed)), nil
}

func (f *fakeInspectionRepo) CountByOutcome(
	ctx context.Context,
	ref EquipmentRef,
	outcome InspectionOutcome,
) (int64, error) {
	var count int64
	for _, r := range f.performed {
		if r.Outcome == outcome {
			count++
		}
	}
	return count, nil
}

func (f *fakeInspectionRepo) CountOverdue(
	ctx context.Context,
	ref EquipmentRef,
	now time.Time,
) (int64, error) {
	return int64(len(f.overdue)), nil
}

func (f *fakeInspectionRepo) SumCosts(
	ctx context.Context,
	ref EquipmentRef,
) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range f.performed {
		for _, c := range r.Costs {
			total = total.Add(c.Total())
		}
	}
	return total, nil
}

type fakeCatalogRepo struct {
	rafts     map[uuid.UUID]*Raft
	bulletins []string
}

func (f *fakeCatalogRepo) GetRaft(ctx context.Context, id uuid.UUID) (*Raft, error) {
	if r, ok := f.rafts[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCatalogRepo) GetServiceBulletins(
	ctx context.Context,
	brandID, modelID *uuid.UUID,
) ([]string, error) {
	return f.bulletins, nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) CacheGet(ctx context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeCache) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	f.store[key] = value
	return nil
}

func (f *fakeCache) CacheDelete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func fakeRepos(
	alerts *fakeAlertRepo,
	cylinders *fakeCylinderRepo,
	stock *fakeStockRepo,
	schedules *fakeScheduleRepo,
	inspections *fakeInspectionRepo,
	catalog *fakeCatalogRepo,
) repositories.Repository {
	return repositories.Repository{
		Alert:      alerts,
		Cylinder:   cylinders,
		Stock:      stock,
		Schedule:   schedules,
		Inspection: inspections,
		Catalog:    catalog,
	}
}
