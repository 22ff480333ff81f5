package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
	"github.com/codyseavey/zhja-translate/internal/store"
)

// TranslationCacheService reads and writes cache entries in the key-value store.
// There is no locking: concurrent misses for the same text each write their own
// entry and the last write wins.
type TranslationCacheService struct {
	store store.Store
	now   func() time.Time
}

// NewTranslationCacheService creates a new translation cache service
func NewTranslationCacheService(s store.Store) *TranslationCacheService {
	return &TranslationCacheService{store: s, now: time.Now}
}

// Get loads the entry stored under key. It returns store.ErrNotFound when absent.
func (s *TranslationCacheService) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	if err := store.GetJSON(ctx, s.store, key, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put stores entry under key, replacing whatever was there.
func (s *TranslationCacheService) Put(ctx context.Context, key string, entry *models.CacheEntry) error {
	if err := store.PutJSON(ctx, s.store, key, entry); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("cache_put").Inc()
		return fmt.Errorf("failed to store cache entry %s: %w", key, err)
	}
	return nil
}

// Lookup returns the entry for key and whether it was found.
// Store failures count as a miss so the request can still be served.
func (s *TranslationCacheService) Lookup(ctx context.Context, key string) (*models.CacheEntry, bool) {
	entry, err := s.Get(ctx, key)
	if err != nil {
		metrics.TranslationCacheMisses.Inc()
		if !errors.Is(err, store.ErrNotFound) {
			metrics.StoreErrorsTotal.WithLabelValues("cache_get").Inc()
			warnLog("Cache lookup failed for %s, treating as miss: %v", key, err)
		}
		return nil, false
	}

	metrics.TranslationCacheHits.Inc()
	debugLog("Cache hit for %s (hits=%d)", key, entry.HitCount)
	return entry, true
}

// RecordHit bumps the hit count and last-access time of entry and writes it back.
// The entry is updated in memory even when the write fails.
func (s *TranslationCacheService) RecordHit(ctx context.Context, key string, entry *models.CacheEntry) error {
	entry.Touch(s.now().UTC())
	return s.Put(ctx, key, entry)
}

// NewEntry builds a fresh entry (hit count 1) for a gateway result.
func (s *TranslationCacheService) NewEntry(text string, c Classification, result models.TranslationResult) *models.CacheEntry {
	now := s.now().UTC()
	return &models.CacheEntry{
		TextHash:          hashText(text),
		SourceText:        text,
		SourceLang:        c.Language,
		TargetLang:        c.Language.Target(),
		TranslationType:   c.Type,
		Category:          c.Category,
		TranslationResult: result,
		CreatedAt:         now,
		HitCount:          1,
		LastAccessed:      now,
	}
}

// entries loads every cache entry. Keys that vanish or fail to decode are skipped.
func (s *TranslationCacheService) entries(ctx context.Context) ([]*models.CacheEntry, error) {
	keys, err := s.store.Keys(ctx, CacheKeyPrefix)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("cache_scan").Inc()
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}

	out := make([]*models.CacheEntry, 0, len(keys))
	for _, key := range keys {
		entry, err := s.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				debugLog("Skipping unreadable cache entry %s: %v", key, err)
			}
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// Recent returns up to limit entries, newest first, optionally restricted to one category.
func (s *TranslationCacheService) Recent(ctx context.Context, limit int, category models.Category) ([]*models.CacheEntry, error) {
	all, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all[:0]
	for _, e := range all {
		if category == "" || e.Category == category {
			filtered = append(filtered, e)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return truncateEntries(filtered, limit), nil
}

// Popular returns up to limit entries ordered by hit count (highest first).
func (s *TranslationCacheService) Popular(ctx context.Context, limit int) ([]*models.CacheEntry, error) {
	all, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].HitCount != all[j].HitCount {
			return all[i].HitCount > all[j].HitCount
		}
		return all[i].LastAccessed.After(all[j].LastAccessed)
	})
	return truncateEntries(all, limit), nil
}

// GetStats returns cache statistics
func (s *TranslationCacheService) GetStats(ctx context.Context) (totalEntries int64, totalHits int64, err error) {
	all, err := s.entries(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, e := range all {
		totalHits += int64(e.HitCount)
	}
	return int64(len(all)), totalHits, nil
}

func truncateEntries(entries []*models.CacheEntry, limit int) []*models.CacheEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
