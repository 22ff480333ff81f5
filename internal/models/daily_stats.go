package models

import "math"

// DayFormat is the layout of the per-day statistics key.
const DayFormat = "2006-01-02"

// DailyStats is the single aggregate statistics record for one calendar day (UTC).
// Counters are best-effort: concurrent updates on the same day may be lost.
type DailyStats struct {
	Date                string           `json:"date"`
	TotalRequests       int              `json:"total_requests"`
	CacheHits           int              `json:"cache_hits"`
	NewTranslations     int              `json:"new_translations"`
	ChineseToJapanese   int              `json:"chinese_to_japanese"`
	JapaneseToChinese   int              `json:"japanese_to_chinese"`
	WordTranslations    int              `json:"word_translations"`
	ArticleTranslations int              `json:"article_translations"`
	CategoryStats       map[Category]int `json:"category_stats"`
}

// NewDailyStats returns a zeroed record for the given day.
func NewDailyStats(date string) *DailyStats {
	return &DailyStats{
		Date:          date,
		CategoryStats: make(map[Category]int),
	}
}

// CacheRate returns cache hits as a rounded percentage of total requests (0 when empty).
func (s *DailyStats) CacheRate() int {
	if s == nil || s.TotalRequests <= 0 {
		return 0
	}
	return int(math.Round(float64(s.CacheHits) / float64(s.TotalRequests) * 100))
}

// DailyStatsView is a day record with its derived cache rate, as served by the stats API.
type DailyStatsView struct {
	DailyStats
	CacheRate int `json:"cache_rate"`
}

// LanguageDistribution counts new translations per direction.
type LanguageDistribution struct {
	ChineseToJapanese int `json:"chinese_to_japanese"`
	JapaneseToChinese int `json:"japanese_to_chinese"`
}

// TodaySummary is the overview returned by GET /api/stats.
type TodaySummary struct {
	TodayRequests        int                  `json:"today_requests"`
	TodayCacheHits       int                  `json:"today_cache_hits"`
	TodayCacheRate       int                  `json:"today_cache_rate"`
	CategoryDistribution map[Category]int     `json:"category_distribution"`
	LanguageDistribution LanguageDistribution `json:"language_distribution"`
}
