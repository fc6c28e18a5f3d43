package alertController

import (
	"context"
	"time"

	"raftwatch/config"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"
	"raftwatch/internal/services"

	"github.com/google/uuid"
)

type AlertController struct {
	alertService      *services.AlertService
	complianceService *services.ComplianceService
	Config            config.Config
	log               logger.Logger
}

type ListAlertsRequest struct {
	Severity string `query:"severity"`
	Unread   bool   `query:"unread"`
	Search   string `query:"search"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type ListAlertsResponse struct {
	Alerts []*Alert `json:"alerts"`
	Total  int64    `json:"total"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
}

type AlertControllerInterface interface {
	ListAlerts(ctx context.Context, request *ListAlertsRequest) (*ListAlertsResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Dismiss(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context) (*services.AlertSummary, error)
	TriggerEvaluation(ctx context.Context) (*services.PassResult, error)
}

func New(
	services services.Service,
	config config.Config,
) AlertControllerInterface {
	return &AlertController{
		alertService:      services.Alert,
		complianceService: services.Compliance,
		Config:            config,
		log:               logger.New("alertController"),
	}
}

func (c *AlertController) ListAlerts(
	ctx context.Context,
	request *ListAlertsRequest,
) (*ListAlertsResponse, error) {
	log := c.log.Function("ListAlerts")

	filter := repositories.AlertFilter{
		Search: request.Search,
		Page:   request.Page,
		Limit:  request.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	if request.Severity != "" {
		severity := AlertSeverity(request.Severity)
		if severity != SeverityInfo && severity != SeverityWarning {
			return nil, log.ErrMsg("invalid severity filter")
		}
		filter.Severity = &severity
	}
	if request.Unread {
		unread := false
		filter.Read = &unread
	}

	alerts, total, err := c.alertService.List(ctx, filter)
	if err != nil {
		return nil, log.Err("failed to list alerts", err)
	}

	return &ListAlertsResponse{
		Alerts: alerts,
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}, nil
}

func (c *AlertController) MarkRead(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("MarkRead")

	if err := c.alertService.MarkRead(ctx, id); err != nil {
		return log.Err("failed to mark alert read", err, "alertID", id)
	}
	return nil
}

func (c *AlertController) Dismiss(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("Dismiss")

	if err := c.alertService.Dismiss(ctx, id); err != nil {
		return log.Err("failed to dismiss alert", err, "alertID", id)
	}
	return nil
}

func (c *AlertController) Summary(ctx context.Context) (*services.AlertSummary, error) {
	log := c.log.Function("Summary")

	summary, err := c.alertService.Summary(ctx, time.Now())
	if err != nil {
		return nil, log.Err("failed to build alert summary", err)
	}
	return summary, nil
}

// TriggerEvaluation runs an evaluation pass on demand, outside the daily
// schedule.
func (c *AlertController) TriggerEvaluation(
	ctx context.Context,
) (*services.PassResult, error) {
	log := c.log.Function("TriggerEvaluation")

	result, err := c.complianceService.RunEvaluationPass(ctx, time.Now())
	if err != nil {
		return nil, log.Err("manual evaluation pass failed", err)
	}
	return result, nil
}
