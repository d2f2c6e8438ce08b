package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// Supported providers.
const (
	ProviderGroq             = "groq"
	ProviderOpenAI           = "openai"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderAnthropic        = "anthropic"
	ProviderGemini           = "gemini"
	ProviderOllama           = "ollama"
)

// Providers lists every provider name accepted by New.
func Providers() []string {
	return []string{
		ProviderGroq,
		ProviderOpenAI,
		ProviderOpenAICompatible,
		ProviderAnthropic,
		ProviderGemini,
		ProviderOllama,
	}
}

// Options configures New.
type Options struct {
	Provider          string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// New builds the LLM service for the configured provider.
func New(opts Options) (ports.LLMService, error) {
	var svc ports.LLMService

	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderGroq:
		svc = NewOpenAIAdapter(ProviderGroq, orDefault(opts.BaseURL, GroqBaseURL), opts.Timeout)
	case ProviderOpenAI:
		svc = NewOpenAIAdapter(ProviderOpenAI, orDefault(opts.BaseURL, OpenAIBaseURL), opts.Timeout)
	case ProviderOpenAICompatible:
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("provider %s requires a base_url", ProviderOpenAICompatible)
		}
		svc = NewOpenAIAdapter(ProviderOpenAICompatible, opts.BaseURL, opts.Timeout)
	case ProviderAnthropic:
		svc = NewAnthropicAdapter(opts.BaseURL, opts.Timeout)
	case ProviderGemini:
		svc = NewGeminiAdapter(opts.BaseURL)
	case ProviderOllama:
		svc = NewOllamaLLMAdapter(opts.BaseURL, opts.Timeout)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}

	return NewRateLimitedLLM(svc, opts.RequestsPerSecond), nil
}

// RequiresAPIKey reports whether calls to provider need a credential.
func RequiresAPIKey(provider string) bool {
	return !strings.EqualFold(strings.TrimSpace(provider), ProviderOllama)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
