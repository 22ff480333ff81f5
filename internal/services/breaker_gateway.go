package services

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/codyseavey/zhja-translate/internal/metrics"
	"github.com/codyseavey/zhja-translate/internal/models"
)

// breakerGateway fails fast once the wrapped gateway keeps failing.
// It never retries: a rejected call is reported as a GatewayError.
type breakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker
}

// WithCircuitBreaker wraps gw in a breaker that opens after the given number of
// consecutive upstream errors and stays open for openTimeout. Zero disables it.
func WithCircuitBreaker(gw Gateway, failures uint32, openTimeout time.Duration) Gateway {
	if failures == 0 {
		return gw
	}

	settings := gobreaker.Settings{
		Name:        gw.Name(),
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			infoLog("%s circuit breaker: %s -> %s", name, from, to)
			metrics.GatewayBreakerState.WithLabelValues(name).Set(float64(to))
		},
		// A missing credential is a configuration problem, not an upstream outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMissingCredential)
		},
	}

	return &breakerGateway{next: gw, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerGateway) Name() string {
	return b.next.Name()
}

func (b *breakerGateway) Translate(ctx context.Context, text string, lang models.Language, typ models.TranslationType) (models.TranslationResult, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text, lang, typ)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.GatewayErrorsTotal.WithLabelValues(b.Name(), "breaker_open").Inc()
			return nil, &GatewayError{Provider: b.Name(), Err: err}
		}
		return nil, err
	}
	return out.(models.TranslationResult), nil
}
