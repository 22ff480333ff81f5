package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/codyseavey/zhja-translate/internal/models"
)

// SummarySource provides today's statistics overview.
type SummarySource interface {
	Summary(ctx context.Context) (*models.TodaySummary, error)
}

// CacheSource provides aggregate cache numbers.
type CacheSource interface {
	GetStats(ctx context.Context) (totalEntries int64, totalHits int64, err error)
}

// UpdateStatsMetrics reads the store and refreshes the "today" and cache gauges.
// Call this periodically; failures are logged and leave the previous values.
func UpdateStatsMetrics(ctx context.Context, stats SummarySource, cache CacheSource) {
	if stats != nil {
		summary, err := stats.Summary(ctx)
		if err != nil {
			zap.S().Warnf("Metrics: failed to load today's stats: %v", err)
		} else {
			TodayRequests.Set(float64(summary.TodayRequests))
			TodayCacheRate.Set(float64(summary.TodayCacheRate))
			TodayCategoryRequests.Reset()
			for category, count := range summary.CategoryDistribution {
				TodayCategoryRequests.WithLabelValues(string(category)).Set(float64(count))
			}
		}
	}

	if cache != nil {
		entries, hits, err := cache.GetStats(ctx)
		if err != nil {
			zap.S().Warnf("Metrics: failed to count cache entries: %v", err)
		} else {
			CacheEntriesTotal.Set(float64(entries))
			CacheStoredHitsTotal.Set(float64(hits))
		}
	}
}

// RunCollector refreshes the gauges every interval until ctx is cancelled.
func RunCollector(ctx context.Context, interval time.Duration, stats SummarySource, cache CacheSource) {
	UpdateStatsMetrics(ctx, stats, cache)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			UpdateStatsMetrics(ctx, stats, cache)
		}
	}
}
