package services

import (
	"fmt"
	"net/http"
	"time"
)

// GatewayConfig selects and configures the translation backend.
type GatewayConfig struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// NewGateway builds the configured gateway. A remote provider without an API key
// degrades to StaticGateway instead of failing.
func NewGateway(cfg GatewayConfig) (Gateway, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	if !IsKnownProvider(cfg.Provider) {
		return nil, fmt.Errorf("unknown gateway provider %q", cfg.Provider)
	}
	if cfg.Provider != ProviderStatic && cfg.APIKey == "" {
		infoLog("no API key for provider %q, falling back to static phrase table", cfg.Provider)
		return NewStaticGateway(), nil
	}

	var gw Gateway
	switch cfg.Provider {
	case ProviderStatic:
		return NewStaticGateway(), nil
	case ProviderDeepSeek, "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultDeepSeekBaseURL
		}
		gw = NewChatGateway(ChatGatewayConfig{
			Provider:   ProviderDeepSeek,
			APIKey:     cfg.APIKey,
			BaseURL:    baseURL,
			Model:      cfg.Model,
			HTTPClient: httpClient,
		})
	case ProviderOpenAI:
		model := cfg.Model
		if model == "" {
			model = DefaultOpenAIModel
		}
		gw = NewChatGateway(ChatGatewayConfig{
			Provider:   ProviderOpenAI,
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      model,
			HTTPClient: httpClient,
		})
	case ProviderGemini:
		gw = NewGeminiTranslationService(GeminiConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			HTTPClient: httpClient,
		})
	}

	return WithCircuitBreaker(gw, cfg.BreakerFailures, cfg.BreakerTimeout), nil
}

// IsKnownProvider reports whether name selects a gateway ("" means the default, DeepSeek).
func IsKnownProvider(name string) bool {
	switch name {
	case "", ProviderDeepSeek, ProviderOpenAI, ProviderGemini, ProviderStatic:
		return true
	}
	return false
}
