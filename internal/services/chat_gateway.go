package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
)

const (
	DefaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	DefaultDeepSeekModel   = "deepseek-chat"
	DefaultOpenAIModel     = openai.GPT4oMini
)

// ChatGatewayConfig configures an OpenAI-compatible chat-completion backend.
type ChatGatewayConfig struct {
	Provider   string // label used in logs, metrics and errors
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// ChatGateway translates through an OpenAI-compatible chat-completion API
// (DeepSeek by default).
type ChatGateway struct {
	provider string
	model    string
	client   *openai.Client
	enabled  bool
}

// NewChatGateway builds a chat gateway. Without an API key every call fails with
// ErrMissingCredential.
func NewChatGateway(cfg ChatGatewayConfig) *ChatGateway {
	if cfg.Provider == "" {
		cfg.Provider = ProviderDeepSeek
	}
	if cfg.Model == "" {
		cfg.Model = DefaultDeepSeekModel
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	gw := &ChatGateway{
		provider: cfg.Provider,
		model:    cfg.Model,
		client:   openai.NewClientWithConfig(clientCfg),
		enabled:  cfg.APIKey != "",
	}

	if gw.enabled {
		keyPreview := cfg.APIKey
		if len(keyPreview) > 6 {
			keyPreview = keyPreview[:6] + "..."
		}
		infoLog("%s gateway: enabled (model=%s, base_url=%s, key=%s)", gw.provider, gw.model, clientCfg.BaseURL, keyPreview)
	} else {
		infoLog("%s gateway: disabled (no API key)", gw.provider)
	}
	return gw
}

func (g *ChatGateway) Name() string {
	return g.provider
}

// Translate sends one chat-completion request and converts the reply into a result.
func (g *ChatGateway) Translate(ctx context.Context, text string, lang models.Language, typ models.TranslationType) (models.TranslationResult, error) {
	if !g.enabled {
		return nil, ErrMissingCredential
	}

	prompt, maxTokens := promptFor(typ)
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(prompt, text)},
		},
		Temperature: gatewayTemperature,
		MaxTokens:   maxTokens,
	}

	debugLog("%s request: model=%s, type=%s, input_len=%d", g.provider, g.model, typ, len(text))

	startTime := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	metrics.GatewayLatency.WithLabelValues(g.provider).Observe(time.Since(startTime).Seconds())
	if err != nil {
		return nil, g.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.GatewayErrorsTotal.WithLabelValues(g.provider, "empty").Inc()
		return nil, &GatewayError{Provider: g.provider, Err: errors.New("no choices in response")}
	}

	metrics.TranslationRequestsTotal.WithLabelValues(g.provider).Inc()
	return buildResult(g.provider, resp.Choices[0].Message.Content, text, lang, typ), nil
}

// wrapError converts go-openai errors into GatewayError, keeping the upstream status.
func (g *ChatGateway) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		metrics.GatewayErrorsTotal.WithLabelValues(g.provider, "api").Inc()
		return &GatewayError{Provider: g.provider, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		metrics.GatewayErrorsTotal.WithLabelValues(g.provider, "api").Inc()
		body := reqErr.HTTPStatus
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &GatewayError{Provider: g.provider, StatusCode: reqErr.HTTPStatusCode, Body: body, Err: err}
	}

	metrics.GatewayErrorsTotal.WithLabelValues(g.provider, "network").Inc()
	return &GatewayError{Provider: g.provider, Err: err}
}
