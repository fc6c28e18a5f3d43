package services

import (
	"context"
	"time"

	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"
)

// Per-class recency windows within which an equivalent alert suppresses a new
// one. Stock moves slowly, so its window is a week; everything else re-alerts
// daily.
const (
	CylinderDedupWindow   = 24 * time.Hour
	InspectionDedupWindow = 24 * time.Hour
	ScheduleDedupWindow   = 24 * time.Hour
	StockDedupWindow      = 7 * 24 * time.Hour
)

// DedupService suppresses alerts equivalent to one created recently for the
// same target. Best-effort: a point read-then-write, so a concurrent pass can
// still admit a duplicate. Acceptable because alerts are informational.
type DedupService struct {
	alertRepo repositories.AlertRepository
	log       logger.Logger
}

func NewDedupService(alertRepo repositories.AlertRepository) *DedupService {
	return &DedupService{
		alertRepo: alertRepo,
		log:       logger.New("dedupService"),
	}
}

// ShouldSuppress reports whether an equivalent alert (same equipment
// reference, severity, and title prefix) already exists within the recency
// window ending at now.
func (s *DedupService) ShouldSuppress(
	ctx context.Context,
	candidate *Alert,
	window time.Duration,
	now time.Time,
) (bool, error) {
	log := s.log.Function("ShouldSuppress")

	count, err := s.alertRepo.CountRecent(
		ctx,
		candidate.EquipmentRef,
		candidate.Severity,
		candidate.Title,
		now.Add(-window),
	)
	if err != nil {
		return false, log.Err("failed to check for duplicate alerts", err, "title", candidate.Title)
	}

	return count > 0, nil
}
