package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
	"github.com/codyseavey/zhja-translate/internal/store"
)

// StatsEvent is the outcome of a completed translation request.
type StatsEvent string

const (
	EventCacheHit       StatsEvent = "cache_hit"
	EventNewTranslation StatsEvent = "new_translation"
)

const (
	DefaultStatsDays = 7
	MaxStatsDays     = 365
)

// StatsService aggregates per-day request counters in the key-value store.
//
// Every update is a read-modify-write of the whole day record with no
// concurrency control; simultaneous requests can lose increments. The numbers
// are approximate analytics, not a ledger.
type StatsService struct {
	store store.Store
	now   func() time.Time
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s, now: time.Now}
}

// Today returns the current UTC day key.
func (s *StatsService) Today() string {
	return DayKey(s.now())
}

// load returns the day record, or a zeroed one when the day has no data yet.
func (s *StatsService) load(ctx context.Context, day string) (*models.DailyStats, error) {
	stats := models.NewDailyStats(day)
	if err := store.GetJSON(ctx, s.store, StatsKey(day), stats); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NewDailyStats(day), nil
		}
		return nil, err
	}
	if stats.CategoryStats == nil {
		stats.CategoryStats = make(map[models.Category]int)
	}
	return stats, nil
}

// Update applies one request outcome to the record of day.
// category may be empty; categories are only counted for word translations.
func (s *StatsService) Update(ctx context.Context, day string, event StatsEvent, lang models.Language, category models.Category, typ models.TranslationType) error {
	stats, err := s.load(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to load stats for %s: %w", day, err)
	}

	stats.TotalRequests++

	switch event {
	case EventCacheHit:
		stats.CacheHits++
	case EventNewTranslation:
		stats.NewTranslations++
		switch lang {
		case models.LanguageChinese:
			stats.ChineseToJapanese++
		case models.LanguageJapanese:
			stats.JapaneseToChinese++
		}
		switch typ {
		case models.TranslationTypeWord:
			stats.WordTranslations++
		case models.TranslationTypeArticle:
			stats.ArticleTranslations++
		}
	}

	if category != "" && typ == models.TranslationTypeWord {
		stats.CategoryStats[category]++
	}

	if err := store.PutJSON(ctx, s.store, StatsKey(day), stats); err != nil {
		return fmt.Errorf("failed to save stats for %s: %w", day, err)
	}
	return nil
}

// Record applies an outcome to today's record. Failures are logged and counted,
// never returned: statistics must not fail a user request.
func (s *StatsService) Record(ctx context.Context, event StatsEvent, c Classification) {
	if err := s.Update(ctx, s.Today(), event, c.Language, c.Category, c.Type); err != nil {
		metrics.StatsUpdateErrorsTotal.Inc()
		warnLog("Stats update failed: %v", err)
	}
}

// Daily returns the records of the last days days (today included) in chronological
// order. Days without a record are omitted.
func (s *StatsService) Daily(ctx context.Context, days int) ([]models.DailyStatsView, error) {
	days = NormalizeDays(days)
	today := s.now().UTC()

	// Walk backwards from today, then reverse into oldest-first order
	views := make([]models.DailyStatsView, 0, days)
	for i := 0; i < days; i++ {
		day := DayKey(today.AddDate(0, 0, -i))

		var stats models.DailyStats
		if err := store.GetJSON(ctx, s.store, StatsKey(day), &stats); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			metrics.StoreErrorsTotal.WithLabelValues("stats_get").Inc()
			return nil, fmt.Errorf("failed to load stats for %s: %w", day, err)
		}
		views = append(views, models.DailyStatsView{DailyStats: stats, CacheRate: stats.CacheRate()})
	}

	for i, j := 0, len(views)-1; i < j; i, j = i+1, j-1 {
		views[i], views[j] = views[j], views[i]
	}
	return views, nil
}

// Summary returns today's overview.
func (s *StatsService) Summary(ctx context.Context) (*models.TodaySummary, error) {
	stats, err := s.load(ctx, s.Today())
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("stats_get").Inc()
		return nil, fmt.Errorf("failed to load today's stats: %w", err)
	}

	return &models.TodaySummary{
		TodayRequests:        stats.TotalRequests,
		TodayCacheHits:       stats.CacheHits,
		TodayCacheRate:       stats.CacheRate(),
		CategoryDistribution: stats.CategoryStats,
		LanguageDistribution: models.LanguageDistribution{
			ChineseToJapanese: stats.ChineseToJapanese,
			JapaneseToChinese: stats.JapaneseToChinese,
		},
	}, nil
}

// NormalizeDays applies the default (7) to non-positive values and caps the range.
func NormalizeDays(days int) int {
	if days <= 0 {
		return DefaultStatsDays
	}
	if days > MaxStatsDays {
		return MaxStatsDays
	}
	return days
}
