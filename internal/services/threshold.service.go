package services

import (
	"time"

	"raftwatch/internal/utils"
)

// Per-class lookahead windows, in days before the due date, during which a
// due-soon alert is eligible to fire.
const (
	CylinderTestLookaheadDays = 30
	InspectionLookaheadDays   = 7
	ScheduleLookaheadDays     = 7
)

// DueStatus is the evaluation of a dated compliance attribute against a
// reference instant.
type DueStatus struct {
	// Overdue is true when the target date has been reached or passed.
	Overdue bool

	// DueSoon is true when the target date falls within the lookahead
	// window, exclusive of "now" itself.
	DueSoon bool

	// DaysRemaining is the signed full-day difference, for message
	// formatting only. Negative when overdue.
	DaysRemaining int
}

// ThresholdService decides whether dated attributes have been breached or are
// approaching breach. Pure date arithmetic; callers own any resulting state
// transitions (e.g. expiring a cylinder).
type ThresholdService struct{}

func NewThresholdService() *ThresholdService {
	return &ThresholdService{}
}

// EvaluateDue classifies a target date against now and a lookahead window.
// A target exactly at now counts as overdue; a target exactly at the window
// edge counts as due soon.
func (s *ThresholdService) EvaluateDue(
	target time.Time,
	lookaheadDays int,
	now time.Time,
) DueStatus {
	status := DueStatus{
		DaysRemaining: utils.DaysBetween(now, target),
	}

	if !target.After(now) {
		status.Overdue = true
		return status
	}

	limit := now.AddDate(0, 0, lookaheadDays)
	if !target.After(limit) {
		status.DueSoon = true
	}

	return status
}

// StockBelowMinimum reports whether a stock quantity has fallen to or below a
// positive reorder threshold. A zero threshold means the item is not tracked.
func (s *ThresholdService) StockBelowMinimum(quantity, minimum int) bool {
	return minimum > 0 && quantity <= minimum
}
