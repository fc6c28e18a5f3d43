package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"raftwatch/internal/database"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInspectionService(
	t *testing.T,
	inspections *fakeInspectionRepo,
	catalog *fakeCatalogRepo,
	txBegins int,
) *InspectionService {
	gormDB, mock := setupTestDB(t)
	for range txBegins {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	mock.MatchExpectationsInOrder(false)

	repos := repositories.Repository{
		Inspection: inspections,
		Catalog:    catalog,
		Schedule:   &fakeScheduleRepo{},
	}
	return NewInspectionService(repos, NewTransactionService(database.DB{SQL: gormDB}))
}

func performedRecord(vesselID uuid.UUID) *InspectionRecord {
	return &InspectionRecord{
		Kind:         "annual service",
		Technician:   "R. Almeida",
		PerformedAt:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		EquipmentRef: VesselRef(vesselID),
	}
}

func TestRecordInspection_AllocatesFirstNumber(t *testing.T) {
	inspections := &fakeInspectionRepo{}
	service := newInspectionService(t, inspections, &fakeCatalogRepo{}, 1)

	record, err := service.RecordInspection(context.Background(), performedRecord(uuid.New()))
	require.NoError(t, err)

	assert.Equal(t, "INS-000001", record.Number)
	assert.Equal(t, OutcomeApproved, record.Outcome, "outcome defaults to approved")
	assert.Equal(t, InspectionStatusPerformed, record.Status)
	require.Len(t, inspections.history, 1)
	assert.Equal(t, record.ID, inspections.history[0].InspectionID)
	assert.Equal(t, record.Outcome, inspections.history[0].Outcome)
}

func TestRecordInspection_IncrementsFromLastNumber(t *testing.T) {
	inspections := &fakeInspectionRepo{lastNumber: "INS-000041"}
	service := newInspectionService(t, inspections, &fakeCatalogRepo{}, 1)

	record, err := service.RecordInspection(context.Background(), performedRecord(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, "INS-000042", record.Number)
}

func TestRecordInspection_RetriesOnNumberCollision(t *testing.T) {
	inspections := &fakeInspectionRepo{
		createErrs: []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, nil},
	}

	gormDB, mock := setupTestDB(t)
	mock.MatchExpectationsInOrder(false)
	for range 3 {
		mock.ExpectBegin()
	}
	mock.ExpectRollback()
	mock.ExpectRollback()
	mock.ExpectCommit()

	repos := repositories.Repository{Inspection: inspections, Catalog: &fakeCatalogRepo{}}
	service := NewInspectionService(repos, NewTransactionService(database.DB{SQL: gormDB}))

	record, err := service.RecordInspection(context.Background(), performedRecord(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, 3, inspections.createCalls)
	assert.NotEmpty(t, record.Number)
}

func TestRecordInspection_GivesUpAfterRetriesExhausted(t *testing.T) {
	inspections := &fakeInspectionRepo{
		createErrs: []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey},
	}

	gormDB, mock := setupTestDB(t)
	mock.MatchExpectationsInOrder(false)
	for range 3 {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	repos := repositories.Repository{Inspection: inspections, Catalog: &fakeCatalogRepo{}}
	service := NewInspectionService(repos, NewTransactionService(database.DB{SQL: gormDB}))

	_, err := service.RecordInspection(context.Background(), performedRecord(uuid.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSequenceExhausted)
	assert.Equal(t, 3, inspections.createCalls)
}

func TestRecordInspection_NonCollisionErrorDoesNotRetry(t *testing.T) {
	storeErr := errors.New("disk full")
	inspections := &fakeInspectionRepo{createErrs: []error{storeErr}}

	gormDB, mock := setupTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repos := repositories.Repository{Inspection: inspections, Catalog: &fakeCatalogRepo{}}
	service := NewInspectionService(repos, NewTransactionService(database.DB{SQL: gormDB}))

	_, err := service.RecordInspection(context.Background(), performedRecord(uuid.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, inspections.createCalls)
}

func TestRecordInspection_RejectsAmbiguousEquipmentRef(t *testing.T) {
	service := newInspectionService(t, &fakeInspectionRepo{}, &fakeCatalogRepo{}, 0)

	vesselID := uuid.New()
	raftID := uuid.New()
	record := performedRecord(vesselID)
	record.RaftID = &raftID

	_, err := service.RecordInspection(context.Background(), record)
	assert.ErrorIs(t, err, ErrAmbiguousEquipmentRef)
}

func TestRecordInspection_AppendsServiceBulletins(t *testing.T) {
	raftID := uuid.New()
	brandID := uuid.New()
	raft := &Raft{SerialNumber: "RFT-9", BrandID: &brandID}
	raft.ID = raftID

	catalog := &fakeCatalogRepo{
		rafts:     map[uuid.UUID]*Raft{raftID: raft},
		bulletins: []string{"SB-2025-03 valve replacement", "SB-2026-01 canopy seam"},
	}
	service := newInspectionService(t, &fakeInspectionRepo{}, catalog, 1)

	record := &InspectionRecord{
		Kind:         "annual service",
		Technician:   "R. Almeida",
		Notes:        "Canopy intact.",
		EquipmentRef: RaftRef(raftID),
	}

	created, err := service.RecordInspection(context.Background(), record)
	require.NoError(t, err)
	assert.Contains(t, created.Notes, "Canopy intact.")
	assert.Contains(t, created.Notes, "SB-2025-03 valve replacement")
	assert.Contains(t, created.Notes, "SB-2026-01 canopy seam")
}

func TestComputeNextDue(t *testing.T) {
	service := &InspectionService{log: testLogger()}

	tests := []struct {
		name      string
		last      time.Time
		frequency Frequency
		want      time.Time
	}{
		{
			name:      "monthly clamps to shorter month",
			last:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			frequency: FrequencyMonthly,
			want:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "quarterly",
			last:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			frequency: FrequencyQuarterly,
			want:      time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "biannual",
			last:      time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			frequency: FrequencyBiannual,
			want:      time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "annual",
			last:      time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			frequency: FrequencyAnnual,
			want:      time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unknown frequency falls back to monthly",
			last:      time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			frequency: Frequency("fortnightly"),
			want:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ComputeNextDue(tt.last, tt.frequency))
		})
	}
}

func TestCompleteSchedule(t *testing.T) {
	schedules := &fakeScheduleRepo{schedules: map[uuid.UUID]*MaintenanceSchedule{}}
	schedule := &MaintenanceSchedule{
		Title:        "Raft repack",
		Kind:         "repack",
		Frequency:    FrequencyAnnual,
		NextDueAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EquipmentRef: VesselRef(uuid.New()),
	}
	schedule.ID = uuid.New()
	schedules.schedules[schedule.ID] = schedule

	service := &InspectionService{scheduleRepo: schedules, log: testLogger()}

	nextDue, err := service.CompleteSchedule(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC), nextDue)
	assert.Equal(t, []uuid.UUID{schedule.ID}, schedules.done)
}

func TestCompleteSchedule_NotFound(t *testing.T) {
	service := &InspectionService{scheduleRepo: &fakeScheduleRepo{}, log: testLogger()}

	_, err := service.CompleteSchedule(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpcomingSchedules_DefaultsWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	inWindow := &MaintenanceSchedule{
		Title: "Davit check", Kind: "davit check",
		NextDueAt: now.AddDate(0, 0, 5), EquipmentRef: VesselRef(uuid.New()),
	}
	beyondWindow := &MaintenanceSchedule{
		Title: "Annual service", Kind: "raft service",
		NextDueAt: now.AddDate(0, 1, 0), EquipmentRef: VesselRef(uuid.New()),
	}
	schedules := &fakeScheduleRepo{upcoming: []*MaintenanceSchedule{inWindow, beyondWindow}}
	service := &InspectionService{scheduleRepo: schedules, log: testLogger()}

	result, err := service.UpcomingSchedules(context.Background(), now, 0)
	require.NoError(t, err)
	require.Len(t, result, 1, "default window is 7 days")
	assert.Equal(t, "Davit check", result[0].Title)

	result, err = service.UpcomingSchedules(context.Background(), now, 45)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestOverdueSchedules(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	missed := &MaintenanceSchedule{
		Title: "Raft repack", Kind: "repack",
		NextDueAt: now.AddDate(0, 0, -14), EquipmentRef: VesselRef(uuid.New()),
	}
	pending := &MaintenanceSchedule{
		Title: "Davit check", Kind: "davit check",
		NextDueAt: now.AddDate(0, 0, 2), EquipmentRef: VesselRef(uuid.New()),
	}
	schedules := &fakeScheduleRepo{upcoming: []*MaintenanceSchedule{missed, pending}}
	service := &InspectionService{scheduleRepo: schedules, log: testLogger()}

	result, err := service.OverdueSchedules(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Raft repack", result[0].Title)
}

func TestCosts_Totals(t *testing.T) {
	inspectionID := uuid.New()
	inspections := &fakeInspectionRepo{
		costs: map[uuid.UUID][]*InspectionCost{
			inspectionID: {
				{Category: "labor", UnitValue: decimal.NewFromInt(120), Quantity: 2},
				{Category: "parts", UnitValue: decimal.RequireFromString("35.50"), Quantity: 1},
			},
		},
	}
	service := &InspectionService{inspectionRepo: inspections, log: testLogger()}

	costs, totals, err := service.Costs(context.Background(), inspectionID)
	require.NoError(t, err)
	assert.Len(t, costs, 2)
	assert.Equal(t, 2, totals.Count)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("275.50")), totals.Total.String())
	assert.True(t, totals.Mean.Equal(decimal.RequireFromString("137.75")), totals.Mean.String())
}

func TestCosts_Empty(t *testing.T) {
	service := &InspectionService{inspectionRepo: &fakeInspectionRepo{}, log: testLogger()}

	costs, totals, err := service.Costs(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, costs)
	assert.Zero(t, totals.Count)
	assert.True(t, totals.Total.IsZero())
	assert.True(t, totals.Mean.IsZero())
}
