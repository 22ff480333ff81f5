package services

import (
	"context"
	"unicode/utf8"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
)

// staticPhrases is the tiny phrase table used when no model credential is configured.
var staticPhrases = map[string]string{
	"你好":      "こんにちは",
	"谢谢":      "ありがとう",
	"再见":      "さようなら",
	"东京":      "東京",
	"编程":      "プログラミング",
	"こんにちは":   "你好",
	"ありがとう":   "谢谢",
	"さようなら":   "再见",
	"東京":      "东京",
	"プログラミング": "编程",
}

// StaticGateway answers from staticPhrases without calling any API.
// Unknown phrases get a placeholder translation with low confidence.
type StaticGateway struct{}

func NewStaticGateway() *StaticGateway {
	infoLog("static gateway: enabled (%d phrases, no API key configured)", len(staticPhrases))
	return &StaticGateway{}
}

func (g *StaticGateway) Name() string {
	return ProviderStatic
}

func (g *StaticGateway) Translate(_ context.Context, text string, lang models.Language, typ models.TranslationType) (models.TranslationResult, error) {
	metrics.TranslationRequestsTotal.WithLabelValues(ProviderStatic).Inc()

	translation, ok := staticPhrases[text]
	confidence := 0.95
	romanization := translation
	if !ok {
		translation = text + "(翻译)"
		romanization = text
		confidence = fallbackConfidence
	}

	if typ == models.TranslationTypeArticle {
		return models.TranslationResult{
			"detected_language":     lang,
			"translation_direction": lang.Direction(),
			"translation":           translation,
			"translation_type":      typ,
			"word_count":            utf8.RuneCountInString(text),
			"confidence":            confidence,
			"source":                ProviderStatic,
		}, nil
	}

	return models.TranslationResult{
		"detected_language":     lang,
		"translation_direction": lang.Direction(),
		"word_category":         CategorizeText(text),
		"translations":          []string{translation},
		"romanization":          romanization,
		"translation_type":      typ,
		"confidence":            confidence,
		"source":                ProviderStatic,
	}, nil
}
