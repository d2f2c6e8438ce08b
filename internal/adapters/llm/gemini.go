package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// GeminiAdapter implements ports.LLMService using the Gemini API.
// A client is created per call because the API key arrives with the request.
type GeminiAdapter struct {
	baseURL string
}

// NewGeminiAdapter creates a Gemini adapter. baseURL may be empty.
func NewGeminiAdapter(baseURL string) *GeminiAdapter {
	return &GeminiAdapter{baseURL: strings.TrimSpace(baseURL)}
}

// Complete generates content for a single text prompt.
func (a *GeminiAdapter) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if a.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: a.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &ports.APIError{Provider: ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
		}
		return "", &ports.APIError{Provider: ProviderGemini, Err: err}
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}
