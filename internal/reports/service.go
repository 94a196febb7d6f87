// Package reports is the caller side of the analytics engine: it
// fetches fact snapshots from storage, invokes the pure computation,
// and owns the caching and recomputation policy the engine itself
// deliberately does not have.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/driftlab/beacon-analytics/internal/analytics"
	"github.com/driftlab/beacon-analytics/internal/config"
	"github.com/driftlab/beacon-analytics/internal/metrics"
	"github.com/driftlab/beacon-analytics/internal/storage"
)

// Service computes leaderboards, product rollups and provider balance
// tables from the fact store. Computed results are cached in Redis for
// a short TTL when a client is available; without one every call
// recomputes from a fresh snapshot.
type Service struct {
	store   storage.FactStore
	cache   *redis.Client
	cfg     config.ReportsConfig
	logger  *zap.Logger
	metrics *metrics.Metrics

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a reporting service. cache may be nil.
func NewService(store storage.FactStore, cache *redis.Client, cfg config.ReportsConfig, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// LeaderboardRequest selects the window, sort axis and size of a
// leaderboard. Zero Days means the configured default window; a
// negative value forces all time. Zero Limit means no truncation.
type LeaderboardRequest struct {
	Days   int
	Metric analytics.RankMetric
	Limit  int
}

// Leaderboard computes the ranked affiliate leaderboard.
func (s *Service) Leaderboard(ctx context.Context, req LeaderboardRequest) ([]analytics.OwnerAggregate, error) {
	days := s.effectiveDays(req.Days)
	metric := req.Metric
	if metric == "" {
		metric = analytics.MetricScore
	}
	key := fmt.Sprintf("reports:leaderboard:%d:%s:%d", days, metric, req.Limit)

	var cached []analytics.OwnerAggregate
	if s.fromCache(ctx, "leaderboard", key, &cached) {
		return cached, nil
	}

	start := time.Now()
	campaigns, err := s.store.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}
	links, err := s.store.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	content, err := s.store.ListContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	board := analytics.Leaderboard(campaigns, links, content, analytics.LastDays(days, s.now()), metric)
	if req.Limit > 0 && len(board) > req.Limit {
		board = board[:req.Limit]
	}

	s.metrics.RecordReport("leaderboard", len(board), time.Since(start))
	s.toCache(ctx, key, board)
	return board, nil
}

// ProductRollup computes the per-product performance table.
func (s *Service) ProductRollup(ctx context.Context, days int) ([]analytics.ProductAggregate, error) {
	days = s.effectiveDays(days)
	key := fmt.Sprintf("reports:products:%d", days)

	var cached []analytics.ProductAggregate
	if s.fromCache(ctx, "products", key, &cached) {
		return cached, nil
	}

	start := time.Now()
	campaigns, err := s.store.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}
	links, err := s.store.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}

	rollup := analytics.ProductRollup(campaigns, links, analytics.LastDays(days, s.now()))

	s.metrics.RecordReport("products", len(rollup), time.Since(start))
	s.toCache(ctx, key, rollup)
	return rollup, nil
}

// ProviderBalances computes the provider credit balance table.
func (s *Service) ProviderBalances(ctx context.Context, days int) ([]analytics.ProviderBalance, error) {
	days = s.effectiveDays(days)
	key := fmt.Sprintf("reports:providers:%d", days)

	var cached []analytics.ProviderBalance
	if s.fromCache(ctx, "providers", key, &cached) {
		return cached, nil
	}

	start := time.Now()
	deposits, err := s.store.ListDeposits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deposits: %w", err)
	}
	usage, err := s.store.ListUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage records: %w", err)
	}

	ref := s.now()
	rows := analytics.AnalyzeProviders(deposits, usage, ref, analytics.LastDays(days, ref))

	s.metrics.RecordReport("providers", len(rows), time.Since(start))
	s.toCache(ctx, key, rows)
	return rows, nil
}

// ContentSequences groups all content records into send sequences.
func (s *Service) ContentSequences(ctx context.Context) ([]analytics.ContentSequence, error) {
	content, err := s.store.ListContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return analytics.GroupSequences(content, s.cfg.SequenceGap), nil
}

func (s *Service) effectiveDays(days int) int {
	switch {
	case days < 0:
		return 0
	case days == 0:
		return s.cfg.DefaultWindowDays
	default:
		return days
	}
}

// fromCache loads a cached report into dst. Cache failures are logged
// and treated as misses; the report is simply recomputed.
func (s *Service) fromCache(ctx context.Context, report, key string, dst interface{}) bool {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.RecordCache(report, false)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("report cache entry corrupt", zap.String("key", key), zap.Error(err))
		s.metrics.RecordCache(report, false)
		return false
	}
	s.metrics.RecordCache(report, true)
	return true
}

func (s *Service) toCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Debug("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
