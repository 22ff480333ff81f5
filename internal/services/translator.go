package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
)

// DefaultMaxTextLength is the input limit (in characters) when none is configured
const DefaultMaxTextLength = 500

// TranslateResponse is the outcome of one translation request.
type TranslateResponse struct {
	Result         models.TranslationResult
	FromCache      bool
	CacheHitCount  int
	ProcessingTime string
}

// Payload merges the result with the response annotations, as served by the API.
func (r *TranslateResponse) Payload() map[string]any {
	out := make(map[string]any, len(r.Result)+3)
	for k, v := range r.Result {
		out[k] = v
	}
	out["from_cache"] = r.FromCache
	out["cache_hit_count"] = r.CacheHitCount
	out["processing_time"] = r.ProcessingTime
	return out
}

// Translator orchestrates a request: classify, look up the cache, call the
// gateway on a miss, store the entry and update daily statistics.
// It holds no per-request state.
type Translator struct {
	cache         *TranslationCacheService
	stats         *StatsService
	gateway       Gateway
	maxTextLength int
}

// NewTranslator wires the pipeline. maxTextLength <= 0 uses DefaultMaxTextLength.
func NewTranslator(cache *TranslationCacheService, stats *StatsService, gateway Gateway, maxTextLength int) *Translator {
	if maxTextLength <= 0 {
		maxTextLength = DefaultMaxTextLength
	}

	infoLog("Translator initialized: gateway=%s, max_length=%d", gateway.Name(), maxTextLength)

	return &Translator{
		cache:         cache,
		stats:         stats,
		gateway:       gateway,
		maxTextLength: maxTextLength,
	}
}

// GatewayName returns the name of the configured gateway.
func (t *Translator) GatewayName() string {
	return t.gateway.Name()
}

// MaxTextLength returns the input limit in characters.
func (t *Translator) MaxTextLength() int {
	return t.maxTextLength
}

// Validate trims text and checks it against the input rules.
func (t *Translator) Validate(text string) (string, error) {
	clean := NormalizeText(text)
	if clean == "" {
		return "", ErrInvalidInput
	}
	if n := utf8.RuneCountInString(clean); n > t.maxTextLength {
		return "", fmt.Errorf("%w: %d > %d characters", ErrInputTooLong, n, t.maxTextLength)
	}
	return clean, nil
}

// Translate runs the full pipeline for text.
//
// Returns ErrInvalidInput / ErrInputTooLong for bad input, a *GatewayError when the
// backend fails (nothing is cached or counted then), or a store error when a new
// entry cannot be saved.
func (t *Translator) Translate(ctx context.Context, text string) (*TranslateResponse, error) {
	startTime := time.Now()

	clean, err := t.Validate(text)
	if err != nil {
		return nil, err
	}

	c := Classify(clean)
	key := CacheKey(clean)

	if entry, found := t.cache.Lookup(ctx, key); found {
		if err := t.cache.RecordHit(ctx, key, entry); err != nil {
			warnLog("Failed to record cache hit for %s: %v", key, err)
		}
		t.stats.Record(ctx, EventCacheHit, c)
		metrics.TranslationRequestsTotal.WithLabelValues("cache").Inc()

		return &TranslateResponse{
			Result:         entry.TranslationResult,
			FromCache:      true,
			CacheHitCount:  entry.HitCount,
			ProcessingTime: formatElapsed(time.Since(startTime)),
		}, nil
	}

	debugLog("Cache miss for %s: lang=%s type=%s category=%s", key, c.Language, c.Type, c.Category)

	result, err := t.gateway.Translate(ctx, clean, c.Language, c.Type)
	if err != nil {
		return nil, err
	}

	entry := t.cache.NewEntry(clean, c, result)
	if err := t.cache.Put(ctx, key, entry); err != nil {
		return nil, err
	}
	t.stats.Record(ctx, EventNewTranslation, c)

	infoLog("Translated %q via %s (%s, %s)", truncateText(clean, 30), t.gateway.Name(), c.Language.Direction(), c.Type)

	return &TranslateResponse{
		Result:         result,
		FromCache:      false,
		CacheHitCount:  entry.HitCount,
		ProcessingTime: formatElapsed(time.Since(startTime)),
	}, nil
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// truncateText truncates text to maxLen runes with ellipsis.
// Uses rune count instead of byte count to properly handle UTF-8 (e.g., Japanese).
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
