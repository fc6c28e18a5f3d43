package services

import (
	"context"
	"fmt"
	"time"

	"raftwatch/internal/constants"
	"raftwatch/internal/events"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"

	"github.com/google/uuid"
)

// Alert title prefixes double as the dedup match key, so they must stay
// stable and unique per alert class. Stock titles carry the item name to
// dedup per item rather than globally.
const (
	CylinderAlertTitle          = "Hydrostatic Test Expiring"
	StockAlertTitlePrefix       = "Low Stock: "
	ScheduleAlertTitle          = "Maintenance Due"
	OverdueInspectionAlertTitle = "Inspection Overdue"
)

type PassCounts struct {
	Cylinders          int `json:"cylinders"`
	Stock              int `json:"stock"`
	Schedules          int `json:"schedules"`
	OverdueInspections int `json:"overdueInspections"`
}

func (c PassCounts) Total() int {
	return c.Cylinders + c.Stock + c.Schedules + c.OverdueInspections
}

// PassResult reports one evaluation pass: every alert created, per-class
// counts, cylinders transitioned to expired, and per-entity validation
// warnings that were skipped rather than aborting the pass.
type PassResult struct {
	Created          []*Alert   `json:"created"`
	Counts           PassCounts `json:"counts"`
	ExpiredCylinders int64      `json:"expiredCylinders"`
	Warnings         []string   `json:"warnings,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// ComplianceService orchestrates the evaluation pass across all equipment
// classes: threshold evaluation, alert deduplication, persistence, and the
// cylinder expiry transition.
type ComplianceService struct {
	cylinderRepo   repositories.CylinderRepository
	stockRepo      repositories.StockRepository
	scheduleRepo   repositories.ScheduleRepository
	inspectionRepo repositories.InspectionRepository
	alertRepo      repositories.AlertRepository
	threshold      *ThresholdService
	dedup          *DedupService
	eventBus       *events.EventBus
	cache          SummaryCacheStore
	log            logger.Logger
}

func NewComplianceService(
	repos repositories.Repository,
	threshold *ThresholdService,
	dedup *DedupService,
	eventBus *events.EventBus,
	cache SummaryCacheStore,
) *ComplianceService {
	return &ComplianceService{
		cylinderRepo:   repos.Cylinder,
		stockRepo:      repos.Stock,
		scheduleRepo:   repos.Schedule,
		inspectionRepo: repos.Inspection,
		alertRepo:      repos.Alert,
		threshold:      threshold,
		dedup:          dedup,
		eventBus:       eventBus,
		cache:          cache,
		log:            logger.New("complianceService"),
	}
}

// RunEvaluationPass evaluates every equipment class in a fixed order
// (cylinders, stock, schedules, overdue inspections) so summary output is
// deterministic. Idempotent within the dedup windows: an immediate second
// pass over unchanged data creates no new alerts. A store failure aborts the
// pass; a validation failure on one entity is recorded as a warning and
// skipped so the rest of the fleet still gets alerted.
func (s *ComplianceService) RunEvaluationPass(
	ctx context.Context,
	now time.Time,
) (*PassResult, error) {
	log := s.log.Function("RunEvaluationPass")
	defer s.log.Timer("evaluation pass")()

	result := &PassResult{Timestamp: now}

	if err := s.evaluateCylinders(ctx, now, result); err != nil {
		return nil, s.abort(log, result, err)
	}

	if err := s.evaluateStock(ctx, now, result); err != nil {
		return nil, s.abort(log, result, err)
	}

	if err := s.evaluateSchedules(ctx, now, result); err != nil {
		return nil, s.abort(log, result, err)
	}

	if err := s.evaluateOverdueInspections(ctx, now, result); err != nil {
		return nil, s.abort(log, result, err)
	}

	if len(result.Created) > 0 {
		s.invalidateSummary(ctx)
	}

	if s.eventBus != nil {
		if err := s.eventBus.PublishPassCompleted(
			result.Counts.Total(), len(result.Warnings),
		); err != nil {
			log.Warn("failed to publish pass completion", "error", err)
		}
	}

	log.Info("Evaluation pass completed",
		"created", result.Counts.Total(),
		"cylinders", result.Counts.Cylinders,
		"stock", result.Counts.Stock,
		"schedules", result.Counts.Schedules,
		"overdueInspections", result.Counts.OverdueInspections,
		"expiredCylinders", result.ExpiredCylinders,
		"warnings", len(result.Warnings),
	)

	return result, nil
}

func (s *ComplianceService) abort(log logger.Logger, result *PassResult, err error) error {
	created := result.Counts.Total()
	_ = log.Err("evaluation pass aborted", err, "created", created)
	return fmt.Errorf("evaluation pass aborted after %d alerts: %w", created, err)
}

func (s *ComplianceService) evaluateCylinders(
	ctx context.Context,
	now time.Time,
	result *PassResult,
) error {
	until := now.AddDate(0, 0, CylinderTestLookaheadDays)

	cylinders, err := s.cylinderRepo.FindDueForTest(ctx, now, until)
	if err != nil {
		return err
	}

	for _, cylinder := range cylinders {
		if cylinder.NextTestAt == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("cylinder %s has no next test date", cylinder.SerialNumber))
			continue
		}

		status := s.threshold.EvaluateDue(*cylinder.NextTestAt, CylinderTestLookaheadDays, now)
		if !status.DueSoon && !status.Overdue {
			continue
		}

		alert := &Alert{
			Title: CylinderAlertTitle,
			Message: fmt.Sprintf(
				"Cylinder %s is due for hydrostatic test in %d days (%s)",
				cylinder.SerialNumber,
				status.DaysRemaining,
				cylinder.NextTestAt.Format("2006-01-02"),
			),
			Severity:     SeverityWarning,
			SentAt:       now,
			EquipmentRef: CylinderRef(cylinder.ID),
		}

		created, err := s.createUnlessDuplicate(ctx, alert, CylinderDedupWindow, now)
		if err != nil {
			return err
		}
		if created {
			result.Created = append(result.Created, alert)
			result.Counts.Cylinders++
		}
	}

	// Strictly-past test dates are a state change, not just an alert
	expired, err := s.cylinderRepo.ExpireOverdue(ctx, now)
	if err != nil {
		return err
	}
	result.ExpiredCylinders = expired

	return nil
}

func (s *ComplianceService) evaluateStock(
	ctx context.Context,
	now time.Time,
	result *PassResult,
) error {
	items, err := s.stockRepo.FindBelowMinimum(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		if !s.threshold.StockBelowMinimum(item.Quantity, item.MinQuantity) {
			continue
		}

		alert := &Alert{
			Title: StockAlertTitlePrefix + item.Name,
			Message: fmt.Sprintf(
				"%s has %d units on hand (minimum: %d). Category: %s",
				item.Name, item.Quantity, item.MinQuantity, item.Category,
			),
			Severity: SeverityWarning,
			SentAt:   now,
		}

		created, err := s.createUnlessDuplicate(ctx, alert, StockDedupWindow, now)
		if err != nil {
			return err
		}
		if created {
			result.Created = append(result.Created, alert)
			result.Counts.Stock++
		}
	}

	return nil
}

func (s *ComplianceService) evaluateSchedules(
	ctx context.Context,
	now time.Time,
	result *PassResult,
) error {
	until := now.AddDate(0, 0, ScheduleLookaheadDays)

	schedules, err := s.scheduleRepo.FindUpcoming(ctx, now, until)
	if err != nil {
		return err
	}

	for _, schedule := range schedules {
		if err := schedule.EquipmentRef.Validate(); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("schedule %q has an invalid equipment reference", schedule.Title))
			continue
		}

		status := s.threshold.EvaluateDue(schedule.NextDueAt, ScheduleLookaheadDays, now)
		if !status.DueSoon && !status.Overdue {
			continue
		}

		label := equipmentLabel(schedule.Vessel, schedule.Raft, schedule.Cylinder)
		alert := &Alert{
			Title: ScheduleAlertTitle,
			Message: fmt.Sprintf(
				"%s has %s scheduled in %d days (%s)",
				label,
				schedule.Kind,
				status.DaysRemaining,
				schedule.NextDueAt.Format("2006-01-02"),
			),
			Severity:     SeverityInfo,
			SentAt:       now,
			EquipmentRef: schedule.EquipmentRef,
			ClientID:     clientIDFromVessel(schedule.Vessel),
		}

		created, err := s.createUnlessDuplicate(ctx, alert, ScheduleDedupWindow, now)
		if err != nil {
			return err
		}
		if created {
			result.Created = append(result.Created, alert)
			result.Counts.Schedules++
		}
	}

	return nil
}

func (s *ComplianceService) evaluateOverdueInspections(
	ctx context.Context,
	now time.Time,
	result *PassResult,
) error {
	records, err := s.inspectionRepo.FindOverdue(ctx, now)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := record.EquipmentRef.Validate(); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("inspection %s has an invalid equipment reference", record.Number))
			continue
		}
		if record.NextDueAt == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("inspection %s has no next due date", record.Number))
			continue
		}

		label := equipmentLabel(record.Vessel, record.Raft, record.Cylinder)
		alert := &Alert{
			Title: OverdueInspectionAlertTitle,
			Message: fmt.Sprintf(
				"%s has an inspection overdue since %s",
				label,
				record.NextDueAt.Format("2006-01-02"),
			),
			Severity:     SeverityWarning,
			SentAt:       now,
			EquipmentRef: record.EquipmentRef,
		}

		created, err := s.createUnlessDuplicate(ctx, alert, InspectionDedupWindow, now)
		if err != nil {
			return err
		}
		if created {
			result.Created = append(result.Created, alert)
			result.Counts.OverdueInspections++
		}
	}

	return nil
}

func (s *ComplianceService) createUnlessDuplicate(
	ctx context.Context,
	alert *Alert,
	window time.Duration,
	now time.Time,
) (bool, error) {
	suppress, err := s.dedup.ShouldSuppress(ctx, alert, window, now)
	if err != nil {
		return false, err
	}
	if suppress {
		return false, nil
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return false, err
	}

	if s.eventBus != nil {
		if err := s.eventBus.PublishAlertCreated(
			alert.ID.String(), alert.Title, string(alert.Severity),
		); err != nil {
			s.log.Warn("failed to publish alert event", "title", alert.Title, "error", err)
		}
	}

	return true, nil
}

func (s *ComplianceService) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheDelete(ctx, constants.AlertSummaryCacheKey); err != nil {
		s.log.Warn("failed to invalidate alert summary cache", "error", err)
	}
}

func equipmentLabel(vessel *Vessel, raft *Raft, cylinder *Cylinder) string {
	switch {
	case vessel != nil:
		return vessel.Name
	case raft != nil:
		return "Raft " + raft.SerialNumber
	case cylinder != nil:
		return "Cylinder " + cylinder.SerialNumber
	default:
		return "Equipment"
	}
}

func clientIDFromVessel(vessel *Vessel) *uuid.UUID {
	if vessel == nil {
		return nil
	}
	return vessel.ClientID
}
