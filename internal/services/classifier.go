package services

import (
	"strings"
	"unicode/utf8"

	"github.com/codyseavey/zhja-translate/internal/models"
)

const (
	// MaxWordLength is the longest input (in characters) still treated as a word lookup
	MaxWordLength = 20

	// sentenceTerminators are counted to tell a phrase from several sentences
	sentenceTerminators = "。！？!?"
)

// categoryKeywords is checked in order; the first category with a keyword
// contained in the text wins.
var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryPlace, []string{"市", "省", "县", "区", "街", "路", "东京", "大阪", "京都", "横滨", "北京", "上海", "广州", "深圳"}},
	{models.CategoryUniversity, []string{"大学", "学院", "学校", "研究所", "大學"}},
	{models.CategoryComputing, []string{"プログラミング", "编程", "代码", "API", "データベース", "数据库", "システム", "系统"}},
	{models.CategoryFood, []string{"料理", "食べ物", "美食", "餐厅", "レストラン", "寿司", "拉面"}},
	{models.CategoryTransport, []string{"電車", "地铁", "火车", "バス", "公交", "飞机", "新干线"}},
	{models.CategoryShopping, []string{"買い物", "购物", "商店", "ショッピング", "百货", "デパート"}},
	{models.CategoryTravel, []string{"旅行", "観光", "旅游", "景点", "名所"}},
	{models.CategoryCulture, []string{"文化", "伝統", "传统", "艺术", "アート", "历史"}},
}

func isCJKIdeograph(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func isKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// DetectLanguage guesses whether text is Chinese or Japanese.
// Any CJK ideograph makes it Chinese, even next to kana: kanji-only Japanese is
// indistinguishable from Chinese here. Kana without ideographs means Japanese.
func DetectLanguage(text string) models.Language {
	hasKana := false
	for _, r := range text {
		if isCJKIdeograph(r) {
			return models.LanguageChinese
		}
		if isKana(r) {
			hasKana = true
		}
	}
	if hasKana {
		return models.LanguageJapanese
	}
	return models.LanguageUnknown
}

// DetectTranslationType decides between a word lookup and an article translation.
// Short single-line text with at most one sentence terminator is a word;
// any other signal forces article mode.
func DetectTranslationType(text string) models.TranslationType {
	clean := strings.TrimSpace(text)

	if utf8.RuneCountInString(clean) > MaxWordLength {
		return models.TranslationTypeArticle
	}
	if strings.ContainsAny(clean, "\n\r") {
		return models.TranslationTypeArticle
	}

	terminators := 0
	for _, r := range clean {
		if strings.ContainsRune(sentenceTerminators, r) {
			terminators++
		}
	}
	if terminators > 1 {
		return models.TranslationTypeArticle
	}

	return models.TranslationTypeWord
}

// CategorizeText returns the first category whose keywords appear in text
// (case-sensitive substring match), or CategoryGeneral.
func CategorizeText(text string) models.Category {
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(text, kw) {
				return c.category
			}
		}
	}
	return models.CategoryGeneral
}

// Classification bundles the per-request classifier output.
type Classification struct {
	Language models.Language
	Type     models.TranslationType
	// Category is empty for articles, which are not categorized
	Category models.Category
}

// Classify runs all classifiers over already-trimmed text.
func Classify(text string) Classification {
	c := Classification{
		Language: DetectLanguage(text),
		Type:     DetectTranslationType(text),
	}
	if c.Type == models.TranslationTypeWord {
		c.Category = CategorizeText(text)
	}
	return c
}
