package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/zhja-translate/internal/models"
	"github.com/codyseavey/zhja-translate/internal/services"
	"github.com/codyseavey/zhja-translate/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// failingGateway always reports an upstream failure.
type failingGateway struct{}

func (failingGateway) Name() string { return "failing" }

func (failingGateway) Translate(context.Context, string, models.Language, models.TranslationType) (models.TranslationResult, error) {
	return nil, &services.GatewayError{Provider: "failing", StatusCode: 401, Body: "invalid api key sk-secret"}
}

type testEnv struct {
	router *gin.Engine
	cache  *services.TranslationCacheService
	stats  *services.StatsService
}

func newTestEnv(gw services.Gateway) *testEnv {
	s := store.NewMemoryStore()
	cache := services.NewTranslationCacheService(s)
	stats := services.NewStatsService(s)
	translator := services.NewTranslator(cache, stats, gw, 0)

	translate := NewTranslateHandler(translator)
	statsHandler := NewStatsHandler(stats)
	history := NewHistoryHandler(cache)

	r := gin.New()
	r.POST("/api/translate", translate.Translate)
	r.GET("/api/stats", statsHandler.GetOverview)
	r.GET("/api/stats/daily", statsHandler.GetDaily)
	r.GET("/api/history", history.GetHistory)
	r.GET("/api/popular", history.GetPopular)

	return &testEnv{router: r, cache: cache, stats: stats}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
		}
	}
	return w, decoded
}

func TestTranslateEndpoint(t *testing.T) {
	env := newTestEnv(services.NewStaticGateway())

	w, resp := env.do(t, http.MethodPost, "/api/translate", `{"text":"你好"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if resp["from_cache"] != false || resp["cache_hit_count"] != float64(1) {
		t.Errorf("first response annotations = %v/%v", resp["from_cache"], resp["cache_hit_count"])
	}
	translations, _ := resp["translations"].([]any)
	if len(translations) != 1 || translations[0] != "こんにちは" {
		t.Errorf("translations = %v", resp["translations"])
	}
	if resp["translation_direction"] != "中→日" {
		t.Errorf("translation_direction = %v", resp["translation_direction"])
	}
	if pt, _ := resp["processing_time"].(string); !strings.HasSuffix(pt, "ms") {
		t.Errorf("processing_time = %v", resp["processing_time"])
	}

	w, resp = env.do(t, http.MethodPost, "/api/translate", `{"text":"你好"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["from_cache"] != true || resp["cache_hit_count"] != float64(2) {
		t.Errorf("second response annotations = %v/%v", resp["from_cache"], resp["cache_hit_count"])
	}
}

func TestTranslateEndpointRejectsBadInput(t *testing.T) {
	env := newTestEnv(services.NewStaticGateway())

	tests := []struct {
		name string
		body string
		code string
	}{
		{"Malformed JSON", `{"text":`, "INVALID_BODY"},
		{"Missing text", `{}`, "INVALID_INPUT"},
		{"Blank text", `{"text":"   "}`, "INVALID_INPUT"},
		{"Text too long", `{"text":"` + strings.Repeat("字", 501) + `"}`, "INPUT_TOO_LONG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := env.do(t, http.MethodPost, "/api/translate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if resp["code"] != tt.code {
				t.Errorf("code = %v, want %s", resp["code"], tt.code)
			}
		})
	}

	entries, _ := env.cache.Recent(context.Background(), 10, "")
	if len(entries) != 0 {
		t.Errorf("rejected requests created %d cache entries", len(entries))
	}
}

func TestTranslateEndpointHidesGatewayDetails(t *testing.T) {
	env := newTestEnv(failingGateway{})

	w, resp := env.do(t, http.MethodPost, "/api/translate", `{"text":"你好"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if resp["code"] != "SERVICE_ERROR" {
		t.Errorf("code = %v", resp["code"])
	}
	if strings.Contains(w.Body.String(), "sk-secret") {
		t.Errorf("upstream body leaked to client: %s", w.Body.String())
	}

	summary, err := env.stats.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TodayRequests != 0 {
		t.Errorf("failed request was counted: %+v", summary)
	}
}

func TestTranslateEndpointProseReplyFallsBack(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "deepseek-chat",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "「こんにちは」です。"},
				"finish_reason": "stop",
			}},
		})
	}))
	defer upstream.Close()

	gw := services.NewChatGateway(services.ChatGatewayConfig{APIKey: "sk-test", BaseURL: upstream.URL})
	env := newTestEnv(gw)

	w, resp := env.do(t, http.MethodPost, "/api/translate", `{"text":"你好"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if resp["source"] != "ai_fallback" {
		t.Errorf("source = %v, want ai_fallback", resp["source"])
	}
	if resp["confidence"] != 0.6 {
		t.Errorf("confidence = %v, want 0.6", resp["confidence"])
	}
	translations, _ := resp["translations"].([]any)
	if len(translations) != 1 || translations[0] != "「こんにちは」です。" {
		t.Errorf("translations = %v", resp["translations"])
	}
	if resp["from_cache"] != false {
		t.Errorf("from_cache = %v, want false", resp["from_cache"])
	}
}

func TestStatsEndpoints(t *testing.T) {
	env := newTestEnv(services.NewStaticGateway())
	env.do(t, http.MethodPost, "/api/translate", `{"text":"东京"}`)
	env.do(t, http.MethodPost, "/api/translate", `{"text":"东京"}`)
	env.do(t, http.MethodPost, "/api/translate", `{"text":"ありがとう"}`)

	w, resp := env.do(t, http.MethodGet, "/api/stats", "")
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data := resp["data"].(map[string]any)
	if data["today_requests"] != float64(3) || data["today_cache_hits"] != float64(1) || data["today_cache_rate"] != float64(33) {
		t.Errorf("overview = %v", data)
	}
	categories := data["category_distribution"].(map[string]any)
	if categories["地名"] != float64(2) {
		t.Errorf("category_distribution = %v", categories)
	}
	langs := data["language_distribution"].(map[string]any)
	if langs["chinese_to_japanese"] != float64(1) || langs["japanese_to_chinese"] != float64(1) {
		t.Errorf("language_distribution = %v", langs)
	}

	tests := []struct {
		query  string
		period string
	}{
		{"", "7天"},
		{"?days=3", "3天"},
		{"?days=abc", "7天"},
		{"?days=-2", "7天"},
		{"?days=9999", "365天"},
	}
	for _, tt := range tests {
		w, resp := env.do(t, http.MethodGet, "/api/stats/daily"+tt.query, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.query, w.Code)
			continue
		}
		if resp["period"] != tt.period {
			t.Errorf("%s: period = %v, want %s", tt.query, resp["period"], tt.period)
		}
		days, _ := resp["data"].([]any)
		if len(days) != 1 {
			t.Errorf("%s: got %d day records, want 1", tt.query, len(days))
			continue
		}
		if day := days[0].(map[string]any); day["cache_rate"] != float64(33) || day["date"] != env.stats.Today() {
			t.Errorf("%s: day = %v", tt.query, day)
		}
	}
}

func TestHistoryEndpoints(t *testing.T) {
	env := newTestEnv(services.NewStaticGateway())
	for _, text := range []string{"东京", "寿司", "寿司", "寿司", "你好"} {
		if w, _ := env.do(t, http.MethodPost, "/api/translate", `{"text":"`+text+`"}`); w.Code != http.StatusOK {
			t.Fatalf("translate %s: status = %d", text, w.Code)
		}
	}

	w, resp := env.do(t, http.MethodGet, "/api/history?category=美食", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	entries := resp["data"].([]any)
	if len(entries) != 1 || entries[0].(map[string]any)["source_text"] != "寿司" {
		t.Errorf("history(美食) = %v", entries)
	}

	_, resp = env.do(t, http.MethodGet, "/api/history?limit=2", "")
	if entries := resp["data"].([]any); len(entries) != 2 {
		t.Errorf("history(limit=2) returned %d entries", len(entries))
	}

	_, resp = env.do(t, http.MethodGet, "/api/popular", "")
	popular := resp["data"].([]any)
	if len(popular) != 3 {
		t.Fatalf("popular returned %d entries, want 3", len(popular))
	}
	top := popular[0].(map[string]any)
	if top["source_text"] != "寿司" || top["hit_count"] != float64(3) {
		t.Errorf("top popular = %v", top)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 20},
		{"abc", 20},
		{"0", 20},
		{"-5", 20},
		{"10", 10},
		{"1000", maxListLimit},
	}

	for _, tt := range tests {
		if got := parseLimit(tt.raw, 20); got != tt.expected {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.raw, got, tt.expected)
		}
	}
}
