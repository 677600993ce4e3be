package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmaerten/github-stats/internal/models"
	"github.com/vmaerten/github-stats/internal/repositories"
	"github.com/vmaerten/github-stats/internal/stats"
	"github.com/vmaerten/github-stats/pkg/logger"
)

// ActivityFetcher retrieves normalized repository activity for a window.
type ActivityFetcher interface {
	FetchActivity(ctx context.Context, windowStart, windowEnd time.Time) (*models.RepositoryActivity, error)
}

// StatsService ties the fetch layer, the snapshot cache, and the
// aggregation engine together.
type StatsService struct {
	fetcher      ActivityFetcher
	snapshotRepo *repositories.ActivitySnapshotRepository
	aggregator   *stats.Aggregator
	repository   string
	cacheTTL     time.Duration
}

func NewStatsService(fetcher ActivityFetcher, snapshotRepo *repositories.ActivitySnapshotRepository, repository string, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		fetcher:      fetcher,
		snapshotRepo: snapshotRepo,
		aggregator:   stats.NewAggregator(),
		repository:   repository,
		cacheTTL:     cacheTTL,
	}
}

// Collect returns the aggregated statistics for the window, fetching from
// the API only when no fresh-enough cached snapshot exists.
func (s *StatsService) Collect(ctx context.Context, windowStart, windowEnd time.Time) (*models.RepositoryStatistics, error) {
	activity, err := s.activity(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Aggregate(s.repository, windowStart, windowEnd, activity), nil
}

// CollectActivity exposes the raw normalized activity, used by the
// comment-extraction report.
func (s *StatsService) CollectActivity(ctx context.Context, windowStart, windowEnd time.Time) (*models.RepositoryActivity, error) {
	return s.activity(ctx, windowStart, windowEnd)
}

func (s *StatsService) activity(ctx context.Context, windowStart, windowEnd time.Time) (*models.RepositoryActivity, error) {
	if cached := s.fromCache(windowStart, windowEnd); cached != nil {
		return cached, nil
	}

	activity, err := s.fetcher.FetchActivity(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	s.store(activity, windowStart, windowEnd)
	return activity, nil
}

func (s *StatsService) fromCache(windowStart, windowEnd time.Time) *models.RepositoryActivity {
	if s.snapshotRepo == nil {
		return nil
	}

	cutoff := time.Now().Add(-s.cacheTTL)
	snapshot, err := s.snapshotRepo.GetLatest(s.repository, windowStart, windowEnd, cutoff)
	if err != nil {
		logger.WithError(err).Warnf("Snapshot lookup failed for %s", s.repository)
		return nil
	}
	if snapshot == nil {
		return nil
	}

	var activity models.RepositoryActivity
	if err := json.Unmarshal([]byte(snapshot.Payload), &activity); err != nil {
		logger.WithError(err).Warnf("Discarding unreadable snapshot %s", snapshot.ID)
		return nil
	}

	logger.Infof("Using cached activity snapshot %s", snapshot.ID)
	return &activity
}

// store caches the fetch result. Cache failures are logged, never fatal:
// the report can always be produced from the in-memory activity.
func (s *StatsService) store(activity *models.RepositoryActivity, windowStart, windowEnd time.Time) {
	if s.snapshotRepo == nil {
		return
	}

	payload, err := json.Marshal(activity)
	if err != nil {
		logger.WithError(err).Warn("Failed to encode activity snapshot")
		return
	}

	snapshot := models.NewActivitySnapshot(s.repository, windowStart, windowEnd, string(payload))
	if err := snapshot.Validate(); err != nil {
		logger.WithError(err).Warn("Refusing to cache invalid snapshot")
		return
	}
	if err := s.snapshotRepo.Create(snapshot); err != nil {
		logger.WithError(err).Warn("Failed to cache activity snapshot")
		return
	}

	if err := s.snapshotRepo.DeleteOlderThan(time.Now().Add(-2 * s.cacheTTL)); err != nil {
		logger.WithError(err).Warn("Failed to prune old snapshots")
	}
}

// Window computes the trailing reporting window ending now.
func Window(periodDays int) (time.Time, time.Time, error) {
	if periodDays <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("period must be positive, got %d days", periodDays)
	}
	end := time.Now().UTC()
	return end.AddDate(0, 0, -periodDays), end, nil
}
