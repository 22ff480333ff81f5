package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
)

const (
	DefaultGeminiModel   = "gemini-3-flash-preview"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// GeminiConfig configures the Gemini generateContent backend.
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// GeminiTranslationService translates through the Gemini generateContent API
type GeminiTranslationService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	enabled    bool
}

// geminiRequest is the request body for Gemini API
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

// geminiAPIResponse is the response from Gemini API
type geminiAPIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiTranslationService creates a new Gemini translation service
func NewGeminiTranslationService(cfg GeminiConfig) *GeminiTranslationService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	svc := &GeminiTranslationService{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
		enabled:    cfg.APIKey != "",
	}

	if svc.enabled {
		// Only show first 10 chars of key for security
		keyPreview := cfg.APIKey
		if len(keyPreview) > 10 {
			keyPreview = keyPreview[:10] + "..."
		}
		infoLog("Gemini gateway: enabled (model=%s, key=%s)", svc.model, keyPreview)
	} else {
		infoLog("Gemini gateway: disabled (no API key)")
	}

	return svc
}

func (s *GeminiTranslationService) Name() string {
	return ProviderGemini
}

// Translate asks Gemini for a translation of text.
// Word requests ask for JSON output; articles come back as plain text.
func (s *GeminiTranslationService) Translate(ctx context.Context, text string, lang models.Language, typ models.TranslationType) (models.TranslationResult, error) {
	if !s.enabled {
		return nil, ErrMissingCredential
	}

	prompt, maxTokens := promptFor(typ)
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(prompt, text)}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     gatewayTemperature,
			MaxOutputTokens: maxTokens,
		},
	}
	if typ == models.TranslationTypeWord {
		req.GenerationConfig.ResponseMimeType = "application/json"
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// The key must stay out of the URL: *url.Error carries the URL verbatim
	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.apiKey)

	debugLog("Gemini request: model=%s, type=%s, input_len=%d", s.model, typ, len(text))

	startTime := time.Now()
	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		metrics.GatewayErrorsTotal.WithLabelValues(ProviderGemini, "network").Inc()
		return nil, &GatewayError{Provider: ProviderGemini, Err: err}
	}
	defer resp.Body.Close()

	metrics.GatewayLatency.WithLabelValues(ProviderGemini).Observe(time.Since(startTime).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayErrorsTotal.WithLabelValues(ProviderGemini, "read").Inc()
		return nil, &GatewayError{Provider: ProviderGemini, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		metrics.GatewayErrorsTotal.WithLabelValues(ProviderGemini, "api").Inc()
		debugLog("Gemini API error: status=%d body=%s", resp.StatusCode, string(body))
		return nil, &GatewayError{Provider: ProviderGemini, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiResp geminiAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		metrics.GatewayErrorsTotal.WithLabelValues(ProviderGemini, "parse").Inc()
		return nil, &GatewayError{Provider: ProviderGemini, Err: fmt.Errorf("failed to parse API response: %w", err)}
	}

	if apiResp.Error != nil {
		metrics.GatewayErrorsTotal.WithLabelValues(ProviderGemini, "api").Inc()
		return nil, &GatewayError{Provider: ProviderGemini, StatusCode: apiResp.Error.Code, Body: apiResp.Error.Message}
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		metrics.GatewayErrorsTotal.WithLabelValues(ProviderGemini, "empty").Inc()
		return nil, &GatewayError{Provider: ProviderGemini, Err: fmt.Errorf("no response from Gemini")}
	}

	metrics.TranslationRequestsTotal.WithLabelValues(ProviderGemini).Inc()
	return buildResult(ProviderGemini, apiResp.Candidates[0].Content.Parts[0].Text, text, lang, typ), nil
}
