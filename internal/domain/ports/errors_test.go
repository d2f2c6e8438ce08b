package ports

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_StatusMessage(t *testing.T) {
	err := &APIError{Provider: "groq", StatusCode: 401, Body: `{"error":"invalid key"}` + "\n"}
	want := `API Error: 401 - {"error":"invalid key"}`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestAPIError_TransportFailure(t *testing.T) {
	err := &APIError{Provider: "groq", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("should unwrap to the transport error")
	}

	wrapped := fmt.Errorf("summarizing chunk 1: %w", err)
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find APIError through wrapping")
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("expected status 0, got %d", apiErr.StatusCode)
	}
}

func TestFileOperation_String(t *testing.T) {
	if FileCreated.String() != "created" || FileDeleted.String() != "deleted" {
		t.Error("unexpected operation names")
	}
	if FileOperation(42).String() != "unknown" {
		t.Error("out of range operation should be unknown")
	}
}
