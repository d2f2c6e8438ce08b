package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// RateLimitedLLM throttles calls to the wrapped service.
type RateLimitedLLM struct {
	next    ports.LLMService
	limiter *rate.Limiter
}

// NewRateLimitedLLM wraps next with a limiter allowing rps calls per second.
// A non-positive rps returns next unchanged.
func NewRateLimitedLLM(next ports.LLMService, rps float64) ports.LLMService {
	if rps <= 0 {
		return next
	}
	burst := int(rps * 2) // Burst = 2x rate
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedLLM{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Complete waits for a limiter slot, then delegates.
func (l *RateLimitedLLM) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return l.next.Complete(ctx, req)
}
