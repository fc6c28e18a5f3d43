package services

import (
	"context"
	"testing"
	"time"

	. "raftwatch/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inspectionAt(performed time.Time, outcome InspectionOutcome, cost string) *InspectionRecord {
	record := &InspectionRecord{
		Outcome:     outcome,
		PerformedAt: performed,
	}
	if cost != "" {
		record.Costs = []InspectionCost{
			{UnitValue: decimal.RequireFromString(cost), Quantity: 1},
		}
	}
	return record
}

func TestBucketizeMonthly(t *testing.T) {
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	june := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	records := []*InspectionRecord{
		inspectionAt(june, OutcomeApproved, "100.00"),
		inspectionAt(march, OutcomeRejected, "40.00"),
		inspectionAt(march, OutcomeApproved, "60.00"),
		inspectionAt(march.AddDate(0, 0, 10), OutcomeApprovedConditions, ""),
	}

	buckets := bucketizeMonthly(records)

	require.Len(t, buckets, 2, "months without activity produce no bucket")
	assert.Equal(t, "2026-03", buckets[0].Month)
	assert.Equal(t, "2026-06", buckets[1].Month)

	march2026 := buckets[0]
	assert.Equal(t, 3, march2026.Total)
	assert.Equal(t, 1, march2026.Approved)
	assert.Equal(t, 1, march2026.Rejected)
	assert.Equal(t, 1, march2026.Conditional)
	assert.True(t, march2026.Cost.Equal(decimal.RequireFromString("100.00")))

	june2026 := buckets[1]
	assert.Equal(t, 1, june2026.Total)
	assert.True(t, june2026.Cost.Equal(decimal.RequireFromString("100.00")))
}

func TestBucketizeMonthly_NormalizesOutcomeCase(t *testing.T) {
	performed := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	records := []*InspectionRecord{
		inspectionAt(performed, InspectionOutcome("APPROVED"), ""),
		inspectionAt(performed, InspectionOutcome(" Rejected "), ""),
	}

	buckets := bucketizeMonthly(records)

	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].Approved)
	assert.Equal(t, 1, buckets[0].Rejected)
}

func TestBucketizeMonthly_Empty(t *testing.T) {
	assert.Empty(t, bucketizeMonthly(nil))
}

func TestMonthlyTrend_DefaultsRange(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	inspections := &fakeInspectionRepo{performed: []*InspectionRecord{
		inspectionAt(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), OutcomeApproved, ""),
		inspectionAt(now.AddDate(-2, 0, 0), OutcomeApproved, ""), // outside any sane range
	}}
	service := &StatisticsService{inspectionRepo: inspections, log: testLogger()}

	buckets, err := service.MonthlyTrend(context.Background(), 0, EquipmentRef{}, now)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-06", buckets[0].Month)
}

func TestSummary(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	performed := now.AddDate(0, -1, 0)

	inspections := &fakeInspectionRepo{
		performed: []*InspectionRecord{
			inspectionAt(performed, OutcomeApproved, "50.00"),
			inspectionAt(performed, OutcomeApproved, "30.00"),
			inspectionAt(performed, OutcomeRejected, ""),
			inspectionAt(performed, OutcomeApprovedConditions, ""),
		},
		overdue: []*InspectionRecord{{Number: "INS-000007"}},
	}
	service := &StatisticsService{inspectionRepo: inspections, log: testLogger()}

	summary, err := service.Summary(context.Background(), EquipmentRef{}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, int64(2), summary.Approved)
	assert.Equal(t, int64(1), summary.Rejected)
	assert.Equal(t, int64(1), summary.Conditional)
	assert.Equal(t, int64(1), summary.OverdueCount)
	assert.True(t, summary.TotalCost.Equal(decimal.RequireFromString("80.00")))
	assert.InDelta(t, 50.0, summary.ApprovalRatePercent, 0.001)
}

func TestSummary_EmptyStoreYieldsZeros(t *testing.T) {
	service := &StatisticsService{inspectionRepo: &fakeInspectionRepo{}, log: testLogger()}

	summary, err := service.Summary(context.Background(), EquipmentRef{}, time.Now())
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.ApprovalRatePercent, "no division by zero on an empty store")
	assert.True(t, summary.TotalCost.IsZero())
}
