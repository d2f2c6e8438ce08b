package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/0xcro3dile/lecturesum-go/internal/adapters/parser"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/usecases"
)

const apiTip = "Make sure your API key is valid and you have available credits"

// classify maps a summarization error to a status and user-facing message.
func classify(err error) errorBody {
	var (
		apiErr  *ports.APIError
		sizeErr *http.MaxBytesError
		status  int
		message string
		tip     string
	)

	switch {
	case errors.Is(err, usecases.ErrMissingAPIKey):
		status, message = http.StatusBadRequest, "Please enter your API key"
	case errors.Is(err, usecases.ErrMissingFile):
		status, message = http.StatusBadRequest, "Please upload a PDF file"
	case errors.Is(err, usecases.ErrNoText):
		status, message = http.StatusBadRequest, "Could not extract text from PDF. The file might be image-based."
	case errors.Is(err, parser.ErrNotPDF):
		status, message = http.StatusBadRequest, "The uploaded file is not a PDF"
	case errors.Is(err, usecases.ErrUnknownModel), errors.Is(err, usecases.ErrUnknownSummaryType):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &sizeErr):
		status, message = http.StatusRequestEntityTooLarge, "The uploaded file is too large"
	case errors.As(err, &apiErr):
		status, message, tip = http.StatusBadGateway, "An error occurred: "+apiErr.Error(), apiTip
	case errors.Is(err, context.Canceled):
		status, message = 499, "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		status, message, tip = http.StatusGatewayTimeout, "An error occurred: "+err.Error(), apiTip
	default:
		status, message, tip = http.StatusInternalServerError, "An error occurred: "+err.Error(), apiTip
	}

	return errorBody{Code: status, Message: message, Tip: tip}
}
