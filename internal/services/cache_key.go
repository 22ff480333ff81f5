package services

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/codyseavey/zhja-translate/internal/models"
)

// Key namespaces shared by cache entries and day records in one store.
const (
	CacheKeyPrefix = "translation:"
	StatsKeyPrefix = "stats:"
)

// hashText is a 31-multiplier rolling hash over UTF-16 code units, kept within
// int32 and rendered as the hex of its absolute value.
// Not collision resistant: distinct texts can share a key, and the cache
// then serves one text's translation for the other.
func hashText(text string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(text)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}

// NormalizeText trims surrounding whitespace; all keys and classifiers work on this form.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// CacheKey derives the translation cache key for text.
func CacheKey(text string) string {
	return CacheKeyPrefix + hashText(NormalizeText(text))
}

// StatsKey is the store key of the day record for day (YYYY-MM-DD).
func StatsKey(day string) string {
	return StatsKeyPrefix + day
}

// DayKey formats t as the UTC calendar day used for statistics.
func DayKey(t time.Time) string {
	return t.UTC().Format(models.DayFormat)
}
