package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1/"
	OpenAIBaseURL = "https://api.openai.com/v1/"
)

// OpenAIAdapter implements ports.LLMService against any OpenAI-compatible
// chat completions endpoint (Groq, OpenAI, local gateways).
type OpenAIAdapter struct {
	provider string
	client   openai.Client
}

// NewOpenAIAdapter creates an adapter for the given base URL.
// The API key is supplied per request.
func NewOpenAIAdapter(provider, baseURL string, timeout time.Duration) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := openai.NewClient(
		option.WithBaseURL(normalizeBaseURL(baseURL)),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return &OpenAIAdapter{provider: provider, client: client}
}

// Complete sends one user message and returns choices[0].message.content.
func (a *OpenAIAdapter) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	}

	var opts []option.RequestOption
	if req.APIKey != "" {
		opts = append(opts, option.WithAPIKey(req.APIKey))
	}

	resp, err := a.client.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			body := apiErr.Message
			if body == "" {
				body = apiErr.RawJSON()
			}
			return "", &ports.APIError{Provider: a.provider, StatusCode: apiErr.StatusCode, Body: body, Err: err}
		}
		return "", &ports.APIError{Provider: a.provider, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", a.provider)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%s returned an empty completion", a.provider)
	}
	return content, nil
}

// normalizeBaseURL makes sure the SDK joins paths below the base, not beside it.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}
