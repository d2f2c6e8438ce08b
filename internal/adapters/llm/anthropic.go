package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// AnthropicAdapter implements ports.LLMService using the Anthropic Messages API.
type AnthropicAdapter struct {
	client anthropic.Client
}

// NewAnthropicAdapter creates an Anthropic adapter. baseURL may be empty.
func NewAnthropicAdapter(baseURL string, timeout time.Duration) *AnthropicAdapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithMaxRetries(0),
		anthropicoption.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(normalizeBaseURL(baseURL)))
	}
	return &AnthropicAdapter{client: anthropic.NewClient(opts...)}
}

// Complete sends one user message and concatenates the returned text blocks.
func (a *AnthropicAdapter) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	var opts []anthropicoption.RequestOption
	if req.APIKey != "" {
		opts = append(opts, anthropicoption.WithAPIKey(req.APIKey))
	}

	msg, err := a.client.Messages.New(ctx, params, opts...)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &ports.APIError{Provider: ProviderAnthropic, StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON(), Err: err}
		}
		return "", &ports.APIError{Provider: ProviderAnthropic, Err: err}
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("anthropic returned an empty completion")
	}
	return sb.String(), nil
}
