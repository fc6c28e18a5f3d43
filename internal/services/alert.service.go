package services

import (
	"context"
	"encoding/json"
	"time"

	"raftwatch/internal/constants"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/repositories"

	"github.com/google/uuid"
)

// AlertSummary is the dashboard headline: unread totals, severity breakdown
// over the last day, and a short list of the most recent unread alerts.
type AlertSummary struct {
	TotalUnread    int64     `json:"totalUnread"`
	WarningLast24h int64     `json:"warningLast24h"`
	InfoLast24h    int64     `json:"infoLast24h"`
	Recent         []*Alert  `json:"recent"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

type SummaryCacheStore interface {
	CacheGet(ctx context.Context, key string) (string, error)
	CacheSet(ctx context.Context, key, value string, ttl time.Duration) error
	CacheDelete(ctx context.Context, key string) error
}

type AlertService struct {
	alertRepo repositories.AlertRepository
	cache     SummaryCacheStore
	log       logger.Logger
}

func NewAlertService(alertRepo repositories.AlertRepository, cache SummaryCacheStore) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
		cache:     cache,
		log:       logger.New("alertService"),
	}
}

func (s *AlertService) List(
	ctx context.Context,
	filter repositories.AlertFilter,
) ([]*Alert, int64, error) {
	return s.alertRepo.List(ctx, filter)
}

func (s *AlertService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.alertRepo.MarkRead(ctx, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *AlertService) Dismiss(ctx context.Context, id uuid.UUID) error {
	if err := s.alertRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

// Summary assembles the dashboard headline, serving a cached copy when one
// exists. The cache is short-lived and invalidated on any alert mutation, so
// a miss or a cache error just falls through to the database.
func (s *AlertService) Summary(ctx context.Context, now time.Time) (*AlertSummary, error) {
	log := s.log.Function("Summary")

	if cached := s.cachedSummary(ctx); cached != nil {
		return cached, nil
	}

	totalUnread, err := s.alertRepo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	since := now.Add(-24 * time.Hour)

	warnings, err := s.alertRepo.CountUnreadBySeverity(ctx, SeverityWarning, since)
	if err != nil {
		return nil, err
	}

	infos, err := s.alertRepo.CountUnreadBySeverity(ctx, SeverityInfo, since)
	if err != nil {
		return nil, err
	}

	recent, err := s.alertRepo.RecentUnread(ctx, 5)
	if err != nil {
		return nil, err
	}

	summary := &AlertSummary{
		TotalUnread:    totalUnread,
		WarningLast24h: warnings,
		InfoLast24h:    infos,
		Recent:         recent,
		GeneratedAt:    now,
	}

	s.storeSummary(ctx, summary)
	log.Debug("Alert summary generated", "totalUnread", totalUnread)

	return summary, nil
}

func (s *AlertService) cachedSummary(ctx context.Context) *AlertSummary {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.CacheGet(ctx, constants.AlertSummaryCacheKey)
	if err != nil || raw == "" {
		return nil
	}

	var summary AlertSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		s.log.Warn("failed to decode cached alert summary", "error", err)
		return nil
	}

	return &summary
}

func (s *AlertService) storeSummary(ctx context.Context, summary *AlertSummary) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		s.log.Warn("failed to encode alert summary", "error", err)
		return
	}

	if err := s.cache.CacheSet(
		ctx,
		constants.AlertSummaryCacheKey,
		string(raw),
		constants.AlertSummaryCacheTTL,
	); err != nil {
		s.log.Warn("failed to cache alert summary", "error", err)
	}
}

func (s *AlertService) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheDelete(ctx, constants.AlertSummaryCacheKey); err != nil {
		s.log.Warn("failed to invalidate alert summary cache", "error", err)
	}
}
