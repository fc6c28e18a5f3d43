package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"
	"raftwatch/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InspectionNumberPrefix = "INS"

	// Bounded retry on display-number collision. Concurrent writers race on
	// read-then-increment; the unique index arbitrates and the loser re-reads.
	sequenceRetryAttempts = 3
)

var ErrSequenceExhausted = errors.New("inspection number allocation failed after retries")

// CostTotals aggregates the cost lines of one inspection on read.
type CostTotals struct {
	Total decimal.Decimal `json:"total"`
	Mean  decimal.Decimal `json:"mean"`
	Count int             `json:"count"`
}

type InspectionService struct {
	inspectionRepo repositories.InspectionRepository
	catalogRepo    repositories.CatalogRepository
	scheduleRepo   repositories.ScheduleRepository
	txService      *TransactionService
	log            logger.Logger
}

func NewInspectionService(
	repos repositories.Repository,
	txService *TransactionService,
) *InspectionService {
	return &InspectionService{
		inspectionRepo: repos.Inspection,
		catalogRepo:    repos.Catalog,
		scheduleRepo:   repos.Schedule,
		txService:      txService,
		log:            logger.New("inspectionService"),
	}
}

// RecordInspection persists a new inspection with an allocated sequential
// display number, defaulting the outcome to approved, and writes the initial
// history snapshot in the same transaction. When the target raft's brand or
// model has outstanding service bulletins they are appended to the notes so
// the technician's record carries them.
func (s *InspectionService) RecordInspection(
	ctx context.Context,
	record *InspectionRecord,
) (*InspectionRecord, error) {
	log := s.log.Function("RecordInspection")

	if err := record.EquipmentRef.Validate(); err != nil {
		return nil, err
	}
	if record.Outcome == "" {
		record.Outcome = OutcomeApproved
	}
	if record.Status == "" {
		record.Status = InspectionStatusPerformed
	}
	if record.PerformedAt.IsZero() {
		record.PerformedAt = time.Now()
	}

	if record.RaftID != nil {
		if err := s.appendBulletinNotes(ctx, record); err != nil {
			return nil, err
		}
	}

	for attempt := 1; attempt <= sequenceRetryAttempts; attempt++ {
		last, err := s.inspectionRepo.GetLastNumber(ctx, InspectionNumberPrefix)
		if err != nil {
			return nil, err
		}

		number, err := utils.NextSequence(InspectionNumberPrefix, last)
		if err != nil {
			return nil, log.Err("failed to derive next inspection number", err, "last", last)
		}
		record.Number = number

		err = s.txService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
			if err := s.inspectionRepo.Create(ctx, tx, record); err != nil {
				return err
			}
			return s.inspectionRepo.AddHistory(ctx, tx, historySnapshot(record))
		})
		if err == nil {
			log.Info("Inspection recorded", "number", record.Number, "attempt", attempt)
			return record, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		log.Warn("inspection number collision, retrying",
			"number", record.Number, "attempt", attempt)
		record.ID = uuid.Nil
	}

	return nil, log.Err("inspection number collisions exhausted retries", ErrSequenceExhausted)
}

func (s *InspectionService) appendBulletinNotes(
	ctx context.Context,
	record *InspectionRecord,
) error {
	raft, err := s.catalogRepo.GetRaft(ctx, *record.RaftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	bulletins, err := s.catalogRepo.GetServiceBulletins(ctx, raft.BrandID, raft.ModelID)
	if err != nil {
		return err
	}
	if len(bulletins) == 0 {
		return nil
	}

	note := "Outstanding service bulletins: " + strings.Join(bulletins, "; ")
	if record.Notes == "" {
		record.Notes = note
	} else {
		record.Notes += "\n" + note
	}
	return nil
}

func historySnapshot(record *InspectionRecord) *InspectionHistory {
	return &InspectionHistory{
		InspectionID: record.ID,
		Outcome:      record.Outcome,
		Notes:        record.Notes,
		Technician:   record.Technician,
		PerformedAt:  record.PerformedAt,
		NextDueAt:    record.NextDueAt,
	}
}

func (s *InspectionService) Get(ctx context.Context, id uuid.UUID) (*InspectionRecord, error) {
	return s.inspectionRepo.GetByID(ctx, id)
}

func (s *InspectionService) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status InspectionStatus,
) error {
	return s.inspectionRepo.UpdateStatus(ctx, id, status)
}

func (s *InspectionService) History(
	ctx context.Context,
	inspectionID uuid.UUID,
) ([]*InspectionHistory, error) {
	return s.inspectionRepo.GetHistory(ctx, inspectionID)
}

func (s *InspectionService) AttachCost(ctx context.Context, cost *InspectionCost) error {
	if cost.InspectionID == uuid.Nil || cost.Category == "" {
		return gorm.ErrInvalidValue
	}
	if _, err := s.inspectionRepo.GetByID(ctx, cost.InspectionID); err != nil {
		return err
	}
	return s.inspectionRepo.AddCost(ctx, cost)
}

func (s *InspectionService) Costs(
	ctx context.Context,
	inspectionID uuid.UUID,
) ([]*InspectionCost, CostTotals, error) {
	costs, err := s.inspectionRepo.GetCosts(ctx, inspectionID)
	if err != nil {
		return nil, CostTotals{}, err
	}

	totals := CostTotals{Count: len(costs)}
	for _, cost := range costs {
		totals.Total = totals.Total.Add(cost.Total())
	}
	if totals.Count > 0 {
		totals.Mean = totals.Total.DivRound(decimal.NewFromInt(int64(totals.Count)), 2)
	}

	return costs, totals, nil
}

// ComputeNextDue advances a due date by one recurrence interval, clamping to
// the last day of the landing month when the source day does not exist there.
// An unrecognized frequency falls back to monthly rather than failing the
// write.
func (s *InspectionService) ComputeNextDue(last time.Time, frequency Frequency) time.Time {
	months, ok := frequencyMonths(frequency)
	if !ok {
		s.log.Warn("unknown maintenance frequency, assuming monthly", "frequency", frequency)
		months = 1
	}
	return utils.AddMonthsClamped(last, months)
}

func frequencyMonths(frequency Frequency) (int, bool) {
	switch frequency {
	case FrequencyMonthly:
		return 1, true
	case FrequencyQuarterly:
		return 3, true
	case FrequencyBiannual:
		return 6, true
	case FrequencyAnnual:
		return 12, true
	default:
		return 0, false
	}
}

func (s *InspectionService) CreateSchedule(
	ctx context.Context,
	schedule *MaintenanceSchedule,
) error {
	if err := schedule.EquipmentRef.Validate(); err != nil {
		return err
	}
	return s.scheduleRepo.Create(ctx, schedule)
}

// CompleteSchedule marks a schedule done and returns the computed due date of
// the next cycle. The next cycle is not created automatically; the caller
// decides whether to schedule it.
func (s *InspectionService) CompleteSchedule(
	ctx context.Context,
	id uuid.UUID,
) (time.Time, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, err
	}

	if err := s.scheduleRepo.MarkDone(ctx, id); err != nil {
		return time.Time{}, err
	}

	return s.ComputeNextDue(schedule.NextDueAt, schedule.Frequency), nil
}

// UpcomingSchedules returns scheduled maintenance due within the next days
// from now, soonest first.
func (s *InspectionService) UpcomingSchedules(
	ctx context.Context,
	now time.Time,
	days int,
) ([]*MaintenanceSchedule, error) {
	if days <= 0 {
		days = ScheduleLookaheadDays
	}
	return s.scheduleRepo.FindUpcoming(ctx, now, now.AddDate(0, 0, days))
}

// OverdueSchedules returns scheduled maintenance whose due date has passed
// without completion, most overdue first.
func (s *InspectionService) OverdueSchedules(
	ctx context.Context,
	now time.Time,
) ([]*MaintenanceSchedule, error) {
	return s.scheduleRepo.FindOverdue(ctx, now)
}
