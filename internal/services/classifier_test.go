package services

import (
	"strings"
	"testing"
	"time"

	"github.com/codyseavey/zhja-translate/internal/models"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Language
	}{
		{"Chinese word", "你好", models.LanguageChinese},
		{"Hiragana only", "こんにちは", models.LanguageJapanese},
		{"Katakana only", "プログラミング", models.LanguageJapanese},
		{"Kanji with kana counts as Chinese", "東京へ行きます", models.LanguageChinese},
		{"Latin text", "hello", models.LanguageUnknown},
		{"Empty string", "", models.LanguageUnknown},
		{"Digits and punctuation", "123 !?", models.LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.input); got != tt.expected {
				t.Errorf("DetectLanguage(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectTranslationType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.TranslationType
	}{
		{"Short word", "你好", models.TranslationTypeWord},
		{"Exactly twenty characters", strings.Repeat("字", 20), models.TranslationTypeWord},
		{"Twenty-one characters", strings.Repeat("字", 21), models.TranslationTypeArticle},
		{"Surrounding whitespace is ignored", "  " + strings.Repeat("字", 20) + "  ", models.TranslationTypeWord},
		{"Single terminator", "你好！", models.TranslationTypeWord},
		{"Two terminators", "你好。再见。", models.TranslationTypeArticle},
		{"Mixed-width terminators", "好吗?好!", models.TranslationTypeArticle},
		{"Line break", "你好\n再见", models.TranslationTypeArticle},
		{"Carriage return", "你好\r再见", models.TranslationTypeArticle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTranslationType(tt.input); got != tt.expected {
				t.Errorf("DetectTranslationType(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCategorizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Category
	}{
		{"City suffix", "大阪市", models.CategoryPlace},
		{"University", "早稻田大学", models.CategoryUniversity},
		{"Computing katakana", "データベース", models.CategoryComputing},
		{"Food", "寿司", models.CategoryFood},
		{"Transport", "新干线", models.CategoryTransport},
		{"Shopping", "デパート", models.CategoryShopping},
		{"Travel", "観光", models.CategoryTravel},
		{"Culture", "传统", models.CategoryCulture},
		{"Place wins over university", "北京大学", models.CategoryPlace},
		{"Keyword match is case-sensitive", "api", models.CategoryGeneral},
		{"No keyword", "你好", models.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeText(tt.input); got != tt.expected {
				t.Errorf("CategorizeText(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassifyOnlyCategorizesWords(t *testing.T) {
	word := Classify("东京")
	if word.Category != models.CategoryPlace {
		t.Errorf("word category = %q, want %q", word.Category, models.CategoryPlace)
	}

	article := Classify("我想去东京旅游。东京很漂亮！")
	if article.Type != models.TranslationTypeArticle {
		t.Fatalf("type = %s, want article", article.Type)
	}
	if article.Category != "" {
		t.Errorf("article category = %q, want empty", article.Category)
	}
}

func TestHashText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "0"},
		{"a", "61"},
		{"你好", "9f61d"},
	}

	for _, tt := range tests {
		if got := hashText(tt.input); got != tt.expected {
			t.Errorf("hashText(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestHashTextLongInputStaysPositive(t *testing.T) {
	got := hashText(strings.Repeat("翻译测试", 50))
	if strings.HasPrefix(got, "-") {
		t.Errorf("hashText returned negative hex %s", got)
	}
	if len(got) > 8 {
		t.Errorf("hashText returned %s, longer than a 32-bit value", got)
	}
}

func TestCacheKeyIgnoresSurroundingWhitespace(t *testing.T) {
	if CacheKey("你好") != "translation:9f61d" {
		t.Errorf("CacheKey(你好) = %s", CacheKey("你好"))
	}
	if CacheKey("  你好\n") != CacheKey("你好") {
		t.Error("expected whitespace-padded text to share the key")
	}
	if CacheKey("你好") == CacheKey("您好") {
		t.Error("expected different texts to have different keys")
	}
}

func TestDayKeyUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2026, 10, 18, 5, 0, 0, 0, tokyo)

	if got := DayKey(ts); got != "2026-10-17" {
		t.Errorf("DayKey = %s, want 2026-10-17", got)
	}
	if got := StatsKey("2026-10-17"); got != "stats:2026-10-17" {
		t.Errorf("StatsKey = %s", got)
	}
}
