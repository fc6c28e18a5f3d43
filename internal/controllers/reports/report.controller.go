package reportController

import (
	"context"
	"time"

	"raftwatch/config"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/services"

	"github.com/google/uuid"
)

type ReportController struct {
	statisticsService *services.StatisticsService
	Config            config.Config
	log               logger.Logger
}

type TrendRequest struct {
	RangeMonths int        `query:"rangeMonths"`
	VesselID    *uuid.UUID `query:"vesselId"`
	RaftID      *uuid.UUID `query:"raftId"`
	CylinderID  *uuid.UUID `query:"cylinderId"`
}

type SummaryRequest struct {
	VesselID   *uuid.UUID `query:"vesselId"`
	RaftID     *uuid.UUID `query:"raftId"`
	CylinderID *uuid.UUID `query:"cylinderId"`
}

type ReportControllerInterface interface {
	MonthlyTrend(ctx context.Context, request *TrendRequest) ([]services.MonthlyBucket, error)
	Summary(ctx context.Context, request *SummaryRequest) (*services.StatisticsSummary, error)
}

func New(
	services services.Service,
	config config.Config,
) ReportControllerInterface {
	return &ReportController{
		statisticsService: services.Statistics,
		Config:            config,
		log:               logger.New("reportController"),
	}
}

func (c *ReportController) MonthlyTrend(
	ctx context.Context,
	request *TrendRequest,
) ([]services.MonthlyBucket, error) {
	log := c.log.Function("MonthlyTrend")

	ref := EquipmentRef{
		VesselID:   request.VesselID,
		RaftID:     request.RaftID,
		CylinderID: request.CylinderID,
	}
	if err := ref.ValidateOptional(); err != nil {
		return nil, log.Err("invalid equipment filter", err)
	}

	buckets, err := c.statisticsService.MonthlyTrend(
		ctx, request.RangeMonths, ref, time.Now(),
	)
	if err != nil {
		return nil, log.Err("failed to build monthly trend", err)
	}

	return buckets, nil
}

func (c *ReportController) Summary(
	ctx context.Context,
	request *SummaryRequest,
) (*services.StatisticsSummary, error) {
	log := c.log.Function("Summary")

	ref := EquipmentRef{
		VesselID:   request.VesselID,
		RaftID:     request.RaftID,
		CylinderID: request.CylinderID,
	}
	if err := ref.ValidateOptional(); err != nil {
		return nil, log.Err("invalid equipment filter", err)
	}

	summary, err := c.statisticsService.Summary(ctx, ref, time.Now())
	if err != nil {
		return nil, log.Err("failed to build statistics summary", err)
	}

	return summary, nil
}
