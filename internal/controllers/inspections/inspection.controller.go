package inspectionController

import (
	"context"
	"time"

	"raftwatch/config"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InspectionController struct {
	inspectionService *services.InspectionService
	Config            config.Config
	log               logger.Logger
}

type RecordInspectionRequest struct {
	Kind        string            `json:"kind"                  validate:"required"`
	Technician  string            `json:"technician"            validate:"required"`
	Outcome     InspectionOutcome `json:"outcome,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	PerformedAt *time.Time        `json:"performedAt,omitempty"`
	NextDueAt   *time.Time        `json:"nextDueAt,omitempty"`
	Frequency   *Frequency        `json:"frequency,omitempty"`
	VesselID    *uuid.UUID        `json:"vesselId,omitempty"`
	RaftID      *uuid.UUID        `json:"raftId,omitempty"`
	CylinderID  *uuid.UUID        `json:"cylinderId,omitempty"`
}

type AddCostRequest struct {
	Category    string          `json:"category"    validate:"required"`
	Description string          `json:"description,omitempty"`
	UnitValue   decimal.Decimal `json:"unitValue"   validate:"required"`
	Quantity    int             `json:"quantity,omitempty"`
	Responsible string          `json:"responsible,omitempty"`
}

type CostsResponse struct {
	Costs  []*InspectionCost   `json:"costs"`
	Totals services.CostTotals `json:"totals"`
}

type CreateScheduleRequest struct {
	Title         string           `json:"title"       validate:"required"`
	Description   string           `json:"description,omitempty"`
	Kind          string           `json:"kind"        validate:"required"`
	Frequency     Frequency        `json:"frequency,omitempty"`
	NextDueAt     time.Time        `json:"nextDueAt"   validate:"required"`
	Priority      SchedulePriority `json:"priority,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
	Responsible   string           `json:"responsible,omitempty"`
	VesselID      *uuid.UUID       `json:"vesselId,omitempty"`
	RaftID        *uuid.UUID       `json:"raftId,omitempty"`
	CylinderID    *uuid.UUID       `json:"cylinderId,omitempty"`
}

type CompleteScheduleResponse struct {
	NextDueAt time.Time `json:"nextDueAt"`
}

type InspectionControllerInterface interface {
	RecordInspection(
		ctx context.Context,
		request *RecordInspectionRequest,
	) (*InspectionRecord, error)
	GetInspection(ctx context.Context, id uuid.UUID) (*InspectionRecord, error)
	CancelInspection(ctx context.Context, id uuid.UUID) error
	GetHistory(ctx context.Context, id uuid.UUID) ([]*InspectionHistory, error)
	AddCost(ctx context.Context, id uuid.UUID, request *AddCostRequest) error
	GetCosts(ctx context.Context, id uuid.UUID) (*CostsResponse, error)
	CreateSchedule(
		ctx context.Context,
		request *CreateScheduleRequest,
	) (*MaintenanceSchedule, error)
	CompleteSchedule(ctx context.Context, id uuid.UUID) (*CompleteScheduleResponse, error)
	ListUpcomingSchedules(ctx context.Context, days int) ([]*MaintenanceSchedule, error)
	ListOverdueSchedules(ctx context.Context) ([]*MaintenanceSchedule, error)
}

func New(
	services services.Service,
	config config.Config,
) InspectionControllerInterface {
	return &InspectionController{
		inspectionService: services.Inspection,
		Config:            config,
		log:               logger.New("inspectionController"),
	}
}

func (c *InspectionController) RecordInspection(
	ctx context.Context,
	request *RecordInspectionRequest,
) (*InspectionRecord, error) {
	log := c.log.Function("RecordInspection")

	if request.Kind == "" || request.Technician == "" {
		return nil, log.ErrMsg("kind and technician are required")
	}

	record := &InspectionRecord{
		Kind:       request.Kind,
		Technician: request.Technician,
		Outcome:    request.Outcome,
		Notes:      request.Notes,
		NextDueAt:  request.NextDueAt,
		EquipmentRef: EquipmentRef{
			VesselID:   request.VesselID,
			RaftID:     request.RaftID,
			CylinderID: request.CylinderID,
		},
	}
	if request.PerformedAt != nil {
		record.PerformedAt = *request.PerformedAt
	} else {
		record.PerformedAt = time.Now()
	}
	if record.NextDueAt == nil && request.Frequency != nil {
		nextDue := c.inspectionService.ComputeNextDue(record.PerformedAt, *request.Frequency)
		record.NextDueAt = &nextDue
	}

	created, err := c.inspectionService.RecordInspection(ctx, record)
	if err != nil {
		return nil, log.Err("failed to record inspection", err)
	}

	return created, nil
}

func (c *InspectionController) GetInspection(
	ctx context.Context,
	id uuid.UUID,
) (*InspectionRecord, error) {
	log := c.log.Function("GetInspection")

	record, err := c.inspectionService.Get(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get inspection", err, "inspectionID", id)
	}
	return record, nil
}

func (c *InspectionController) CancelInspection(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("CancelInspection")

	if err := c.inspectionService.UpdateStatus(ctx, id, InspectionStatusCancelled); err != nil {
		return log.Err("failed to cancel inspection", err, "inspectionID", id)
	}
	return nil
}

func (c *InspectionController) GetHistory(
	ctx context.Context,
	id uuid.UUID,
) ([]*InspectionHistory, error) {
	log := c.log.Function("GetHistory")

	history, err := c.inspectionService.History(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get inspection history", err, "inspectionID", id)
	}
	return history, nil
}

func (c *InspectionController) AddCost(
	ctx context.Context,
	id uuid.UUID,
	request *AddCostRequest,
) error {
	log := c.log.Function("AddCost")

	if request.Category == "" {
		return log.ErrMsg("category is required")
	}
	if request.UnitValue.IsNegative() {
		return log.ErrMsg("unitValue must not be negative")
	}

	cost := &InspectionCost{
		InspectionID: id,
		Category:     request.Category,
		Description:  request.Description,
		UnitValue:    request.UnitValue,
		Quantity:     request.Quantity,
		Responsible:  request.Responsible,
	}
	if cost.Quantity <= 0 {
		cost.Quantity = 1
	}

	if err := c.inspectionService.AttachCost(ctx, cost); err != nil {
		return log.Err("failed to add cost", err, "inspectionID", id)
	}
	return nil
}

func (c *InspectionController) GetCosts(
	ctx context.Context,
	id uuid.UUID,
) (*CostsResponse, error) {
	log := c.log.Function("GetCosts")

	costs, totals, err := c.inspectionService.Costs(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get costs", err, "inspectionID", id)
	}

	return &CostsResponse{Costs: costs, Totals: totals}, nil
}

func (c *InspectionController) CreateSchedule(
	ctx context.Context,
	request *CreateScheduleRequest,
) (*MaintenanceSchedule, error) {
	log := c.log.Function("CreateSchedule")

	if request.Title == "" || request.Kind == "" {
		return nil, log.ErrMsg("title and kind are required")
	}
	if request.NextDueAt.IsZero() {
		return nil, log.ErrMsg("nextDueAt is required")
	}

	schedule := &MaintenanceSchedule{
		Title:         request.Title,
		Description:   request.Description,
		Kind:          request.Kind,
		Frequency:     request.Frequency,
		NextDueAt:     request.NextDueAt,
		Priority:      request.Priority,
		EstimatedCost: request.EstimatedCost,
		Responsible:   request.Responsible,
		Status:        ScheduleStatusScheduled,
		EquipmentRef: EquipmentRef{
			VesselID:   request.VesselID,
			RaftID:     request.RaftID,
			CylinderID: request.CylinderID,
		},
	}
	if schedule.Frequency == "" {
		schedule.Frequency = FrequencyMonthly
	}
	if schedule.Priority == "" {
		schedule.Priority = PriorityNormal
	}

	if err := c.inspectionService.CreateSchedule(ctx, schedule); err != nil {
		return nil, log.Err("failed to create schedule", err)
	}

	return schedule, nil
}

func (c *InspectionController) CompleteSchedule(
	ctx context.Context,
	id uuid.UUID,
) (*CompleteScheduleResponse, error) {
	log := c.log.Function("CompleteSchedule")

	nextDue, err := c.inspectionService.CompleteSchedule(ctx, id)
	if err != nil {
		return nil, log.Err("failed to complete schedule", err, "scheduleID", id)
	}

	return &CompleteScheduleResponse{NextDueAt: nextDue}, nil
}

func (c *InspectionController) ListUpcomingSchedules(
	ctx context.Context,
	days int,
) ([]*MaintenanceSchedule, error) {
	log := c.log.Function("ListUpcomingSchedules")

	schedules, err := c.inspectionService.UpcomingSchedules(ctx, time.Now(), days)
	if err != nil {
		return nil, log.Err("failed to list upcoming schedules", err)
	}

	return schedules, nil
}

func (c *InspectionController) ListOverdueSchedules(
	ctx context.Context,
) ([]*MaintenanceSchedule, error) {
	log := c.log.Function("ListOverdueSchedules")

	schedules, err := c.inspectionService.OverdueSchedules(ctx, time.Now())
	if err != nil {
		return nil, log.Err("failed to list overdue schedules", err)
	}

	return schedules, nil
}
