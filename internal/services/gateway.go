package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
)

// Gateway providers
const (
	ProviderDeepSeek = "deepseek"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	ProviderStatic   = "static"
)

const (
	wordMaxTokens      = 1000
	articleMaxTokens   = 4000
	gatewayTemperature = 0.3

	// Confidence markers attached to results built locally instead of parsed from the model
	fallbackConfidence = 0.6
	articleConfidence  = 0.9
)

var errNoJSONObject = errors.New("no JSON object in model output")

// Gateway translates normalized text through an external model.
// Implementations never fail on malformed model output; they return a fallback
// result instead. Errors are reserved for credential and transport failures.
type Gateway interface {
	Translate(ctx context.Context, text string, lang models.Language, typ models.TranslationType) (models.TranslationResult, error)
	Name() string
}

const wordPrompt = `请翻译以下词语/短语并返回JSON格式，要求：
1. 翻译要接地气、自然，符合母语使用习惯
2. 日语翻译必须提供平假名读音
3. 避免过于书面化的表达

文本：%s

JSON格式：
{
  "detected_language": "中文|日语",
  "translation_direction": "中→日|日→中",
  "word_category": "地名|大学|交通|计算机|医学|法律|经济|机构|通用词汇",
  "translations": ["翻译结果"],
  "romanization": "日语读音（平假名）",
  "examples": [{"sentence": "例句", "translation": "例句翻译"}],
  "alternatives": ["其他常用表达方式"],
  "translation_type": "word"
}`

const articlePrompt = `请翻译以下文章/段落，要求：
1. 保持原文的语气和风格
2. 翻译要自然流畅，符合目标语言的表达习惯
3. 保持段落结构和格式
4. 只返回翻译结果，不需要额外信息

文本：%s

请直接返回翻译结果，保持原有的段落格式。`

func promptFor(typ models.TranslationType) (string, int) {
	if typ == models.TranslationTypeArticle {
		return articlePrompt, articleMaxTokens
	}
	return wordPrompt, wordMaxTokens
}

// ExtractJSONObject parses the span from the first '{' to the last '}' of raw model output.
// Prose or code fences around the object are ignored. Braces inside translated
// strings that fall outside the real object can still break extraction.
func ExtractJSONObject(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, errNoJSONObject
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// buildResult turns raw model output into a result for the requested translation type.
func buildResult(provider, raw, text string, lang models.Language, typ models.TranslationType) models.TranslationResult {
	if typ == models.TranslationTypeArticle {
		return models.TranslationResult{
			"detected_language":     lang,
			"translation_direction": lang.Direction(),
			"translation":           strings.TrimSpace(raw),
			"translation_type":      models.TranslationTypeArticle,
			"word_count":            utf8.RuneCountInString(text),
			"confidence":            articleConfidence,
		}
	}

	parsed, err := ExtractJSONObject(raw)
	if err != nil {
		metrics.GatewayFallbacksTotal.WithLabelValues(provider).Inc()
		infoLog("%s output is not valid JSON, using fallback: %v", provider, err)
		debugLog("%s raw output: %s", provider, raw)
		return fallbackResult(raw, lang)
	}
	return models.TranslationResult(parsed)
}

// fallbackResult embeds the raw model text as the translation with degraded confidence.
func fallbackResult(raw string, lang models.Language) models.TranslationResult {
	return models.TranslationResult{
		"detected_language":     lang,
		"translation_direction": lang.Direction(),
		"word_category":         models.CategoryGeneral,
		"translations":          []string{strings.TrimSpace(raw)},
		"translation_type":      models.TranslationTypeWord,
		"confidence":            fallbackConfidence,
		"source":                "ai_fallback",
	}
}
