package ports

import (
	"fmt"
	"strings"
)

// APIError is a failed call to a remote model provider.
// StatusCode is zero when the request never got an HTTP response.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("API Error: %s request failed: %v", e.Provider, e.Err)
		}
		return fmt.Sprintf("API Error: %s request failed", e.Provider)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" && e.Err != nil {
		body = e.Err.Error()
	}
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
