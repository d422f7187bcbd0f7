package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
)

// SummaryCacheKey is where the dashboard summary lives in Redis.
const SummaryCacheKey = "dashboard:summary"

type summaryProvider interface {
	Summary(ctx context.Context, now time.Time) (*models.DashboardSummary, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardService serves the overview counters, optionally cached in Redis
// with a short TTL. Only the summary is cached; the notification feed itself
// is always computed fresh.
type DashboardService struct {
	notifications summaryProvider
	cache         summaryCache
	ttl           time.Duration
	metrics       *MetricsService
	logger        *zap.Logger
	enabled       bool
}

// NewDashboardService constructs a DashboardService. cache may be nil.
func NewDashboardService(notifications summaryProvider, cache summaryCache, ttl time.Duration, metrics *MetricsService, logger *zap.Logger, cacheEnabled bool) *DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		notifications: notifications,
		cache:         cache,
		ttl:           ttl,
		metrics:       metrics,
		logger:        logger,
		enabled:       cacheEnabled,
	}
}

func (s *DashboardService) cacheActive() bool {
	return s.enabled && s.cache != nil
}

// Summary returns the dashboard counters and whether they came from cache.
func (s *DashboardService) Summary(ctx context.Context, now time.Time) (*models.DashboardSummary, bool, error) {
	if s.cacheActive() {
		start := time.Now()
		var cached models.DashboardSummary
		err := s.cache.Get(ctx, SummaryCacheKey, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true, time.Since(start))
			return &cached, true, nil
		}
		s.metrics.RecordCacheOperation(false, time.Since(start))
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("summary cache read failed", zap.Error(err))
		}
	}

	summary, err := s.notifications.Summary(ctx, now)
	if err != nil {
		return nil, false, err
	}

	if s.cacheActive() {
		if err := s.cache.Set(ctx, SummaryCacheKey, summary, s.ttl); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}
