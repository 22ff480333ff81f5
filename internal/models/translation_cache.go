package models

import "time"

// Language is the detected source language of a request.
// Values match the labels stored in cache entries and statistics.
type Language string

const (
	LanguageChinese  Language = "中文"
	LanguageJapanese Language = "日语"
	LanguageUnknown  Language = "未知"
)

// Target returns the language a request is translated into.
// Anything that is not Chinese is translated into Chinese.
func (l Language) Target() Language {
	if l == LanguageChinese {
		return LanguageJapanese
	}
	return LanguageChinese
}

// Direction returns the short direction label, e.g. "中→日".
func (l Language) Direction() string {
	if l == LanguageChinese {
		return "中→日"
	}
	return "日→中"
}

// TranslationType distinguishes single words/phrases from longer passages.
type TranslationType string

const (
	TranslationTypeWord    TranslationType = "word"
	TranslationTypeArticle TranslationType = "article"
)

// Category is a vocabulary domain assigned by keyword matching.
type Category string

const (
	CategoryPlace      Category = "地名"
	CategoryUniversity Category = "大学"
	CategoryComputing  Category = "计算机"
	CategoryFood       Category = "美食"
	CategoryTransport  Category = "交通"
	CategoryShopping   Category = "购物"
	CategoryTravel     Category = "旅游"
	CategoryCulture    Category = "文化"
	CategoryGeneral    Category = "通用词汇"
)

// TranslationResult is the structured payload returned by a gateway.
// The cache treats it as an opaque blob.
type TranslationResult map[string]any

// CacheEntry stores one translated text, keyed by the hash of its trimmed source.
//
// Entries are created on the first translation of a text and rewritten in place on
// every cache hit (hit count and last access). The service never deletes them.
type CacheEntry struct {
	TextHash          string            `json:"text_hash"`
	SourceText        string            `json:"source_text"`
	SourceLang        Language          `json:"source_lang"`
	TargetLang        Language          `json:"target_lang"`
	TranslationType   TranslationType   `json:"translation_type"`
	Category          Category          `json:"word_category,omitempty"`
	TranslationResult TranslationResult `json:"translation_result"`
	CreatedAt         time.Time         `json:"created_at"`
	HitCount          int               `json:"hit_count"`
	LastAccessed      time.Time         `json:"last_accessed"`
}

// Touch records a cache hit at the given time.
func (e *CacheEntry) Touch(now time.Time) {
	e.HitCount++
	e.LastAccessed = now
}
