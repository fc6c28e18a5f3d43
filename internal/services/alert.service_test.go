package services

import (
	"context"
	"testing"
	"time"

	"raftwatch/internal/constants"
	. "raftwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAlert(repo *fakeAlertRepo, severity AlertSeverity, read bool, sentAt time.Time) *Alert {
	alert := &Alert{
		Title:    "Hydrostatic Test Expiring",
		Message:  "test alert",
		Severity: severity,
		Read:     read,
		SentAt:   sentAt,
	}
	_ = repo.Create(context.Background(), alert)
	return alert
}

func TestAlertSummary(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	repo := &fakeAlertRepo{}
	seedAlert(repo, SeverityWarning, false, now.Add(-time.Hour))
	seedAlert(repo, SeverityWarning, false, now.Add(-2*time.Hour))
	seedAlert(repo, SeverityInfo, false, now.Add(-3*time.Hour))
	seedAlert(repo, SeverityWarning, true, now.Add(-time.Hour))
	seedAlert(repo, SeverityWarning, false, now.Add(-48*time.Hour)) // outside 24h window

	service := NewAlertService(repo, nil)

	summary, err := service.Summary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.TotalUnread)
	assert.Equal(t, int64(2), summary.WarningLast24h)
	assert.Equal(t, int64(1), summary.InfoLast24h)
	assert.Len(t, summary.Recent, 4)
}

func TestAlertSummary_ServedFromCache(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	repo := &fakeAlertRepo{}
	seedAlert(repo, SeverityWarning, false, now.Add(-time.Hour))

	cache := newFakeCache()
	service := NewAlertService(repo, cache)

	first, err := service.Summary(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalUnread)
	assert.Contains(t, cache.store, constants.AlertSummaryCacheKey)

	// Mutating the store directly is not visible until the cache is invalidated
	seedAlert(repo, SeverityInfo, false, now)

	cached, err := service.Summary(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.TotalUnread)
}

func TestAlertMarkRead_InvalidatesCache(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	repo := &fakeAlertRepo{}
	alert := seedAlert(repo, SeverityWarning, false, now)

	cache := newFakeCache()
	service := NewAlertService(repo, cache)

	_, err := service.Summary(context.Background(), now)
	require.NoError(t, err)
	require.Contains(t, cache.store, constants.AlertSummaryCacheKey)

	require.NoError(t, service.MarkRead(context.Background(), alert.ID))
	assert.NotContains(t, cache.store, constants.AlertSummaryCacheKey)
	assert.True(t, alert.Read)

	summary, err := service.Summary(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalUnread)
}

func TestAlertDismiss(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	repo := &fakeAlertRepo{}
	alert := seedAlert(repo, SeverityInfo, false, now)

	service := NewAlertService(repo, nil)

	require.NoError(t, service.Dismiss(context.Background(), alert.ID))
	assert.Empty(t, repo.alerts)

	err := service.Dismiss(context.Background(), alert.ID)
	assert.Error(t, err)
}

func TestDedupShouldSuppress(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	repo := &fakeAlertRepo{}
	existing := seedAlert(repo, SeverityWarning, false, now.Add(-time.Hour))

	dedup := NewDedupService(repo)

	candidate := &Alert{
		Title:    existing.Title,
		Message:  "newer duplicate",
		Severity: SeverityWarning,
		SentAt:   now,
	}

	suppress, err := dedup.ShouldSuppress(context.Background(), candidate, 24*time.Hour, now)
	require.NoError(t, err)
	assert.True(t, suppress)

	// Same title but different severity is a different alert
	candidate.Severity = SeverityInfo
	suppress, err = dedup.ShouldSuppress(context.Background(), candidate, 24*time.Hour, now)
	require.NoError(t, err)
	assert.False(t, suppress)

	// The prior alert has aged out of the window
	candidate.Severity = SeverityWarning
	suppress, err = dedup.ShouldSuppress(
		context.Background(), candidate, 30*time.Minute, now,
	)
	require.NoError(t, err)
	assert.False(t, suppress)
}
