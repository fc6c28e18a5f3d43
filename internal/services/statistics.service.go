package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"
	"raftwatch/internal/utils"

	"github.com/shopspring/decimal"
)

// MonthlyBucket is one month of inspection activity. Months with no activity
// produce no bucket.
type MonthlyBucket struct {
	Month       string          `json:"month"`
	Total       int             `json:"total"`
	Approved    int             `json:"approved"`
	Rejected    int             `json:"rejected"`
	Conditional int             `json:"conditional"`
	Cost        decimal.Decimal `json:"cost"`
}

// StatisticsSummary is the fleet-wide (or per-equipment) rollup used by the
// reports dashboard.
type StatisticsSummary struct {
	Total               int64           `json:"total"`
	Approved            int64           `json:"approved"`
	Rejected            int64           `json:"rejected"`
	Conditional         int64           `json:"conditional"`
	OverdueCount        int64           `json:"overdueCount"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	ApprovalRatePercent float64         `json:"approvalRatePercent"`
}

type StatisticsService struct {
	inspectionRepo repositories.InspectionRepository
	log            logger.Logger
}

func NewStatisticsService(repos repositories.Repository) *StatisticsService {
	return &StatisticsService{
		inspectionRepo: repos.Inspection,
		log:            logger.New("statisticsService"),
	}
}

// MonthlyTrend buckets inspections performed over the trailing rangeMonths
// by calendar month, optionally restricted to one piece of equipment.
func (s *StatisticsService) MonthlyTrend(
	ctx context.Context,
	rangeMonths int,
	ref EquipmentRef,
	now time.Time,
) ([]MonthlyBucket, error) {
	if rangeMonths <= 0 {
		rangeMonths = 12
	}

	since := utils.AddMonthsClamped(now, -rangeMonths)
	records, err := s.inspectionRepo.FindPerformedSince(ctx, since, ref)
	if err != nil {
		return nil, err
	}

	return bucketizeMonthly(records), nil
}

// bucketizeMonthly is a pure fold over inspection records. Buckets are sparse
// and sorted ascending by month key.
func bucketizeMonthly(records []*InspectionRecord) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)

	for _, record := range records {
		key := utils.MonthKey(record.PerformedAt)
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyBucket{Month: key}
			byMonth[key] = bucket
		}

		bucket.Total++
		switch normalizeOutcome(record.Outcome) {
		case OutcomeApproved:
			bucket.Approved++
		case OutcomeRejected:
			bucket.Rejected++
		case OutcomeApprovedConditions:
			bucket.Conditional++
		}

		for _, cost := range record.Costs {
			bucket.Cost = bucket.Cost.Add(cost.Total())
		}
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})

	return buckets
}

func normalizeOutcome(outcome InspectionOutcome) InspectionOutcome {
	return InspectionOutcome(strings.ToLower(strings.TrimSpace(string(outcome))))
}

// Summary aggregates lifetime counts, overdue backlog, and total cost. An
// empty store yields zeros with a 0% approval rate rather than an error.
func (s *StatisticsService) Summary(
	ctx context.Context,
	ref EquipmentRef,
	now time.Time,
) (*StatisticsSummary, error) {
	total, err := s.inspectionRepo.CountAll(ctx, ref)
	if err != nil {
		return nil, err
	}

	approved, err := s.inspectionRepo.CountByOutcome(ctx, ref, OutcomeApproved)
	if err != nil {
		return nil, err
	}

	rejected, err := s.inspectionRepo.CountByOutcome(ctx, ref, OutcomeRejected)
	if err != nil {
		return nil, err
	}

	conditional, err := s.inspectionRepo.CountByOutcome(ctx, ref, OutcomeApprovedConditions)
	if err != nil {
		return nil, err
	}

	overdue, err := s.inspectionRepo.CountOverdue(ctx, ref, now)
	if err != nil {
		return nil, err
	}

	totalCost, err := s.inspectionRepo.SumCosts(ctx, ref)
	if err != nil {
		return nil, err
	}

	summary := &StatisticsSummary{
		Total:        total,
		Approved:     approved,
		Rejected:     rejected,
		Conditional:  conditional,
		OverdueCount: overdue,
		TotalCost:    totalCost,
	}
	if total > 0 {
		summary.ApprovalRatePercent = float64(approved) / float64(total) * 100
	}

	return summary, nil
}
