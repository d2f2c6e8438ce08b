package usecases

import "errors"

// Input errors. They are returned before any parsing or network call happens.
var (
	ErrMissingAPIKey      = errors.New("missing API key")
	ErrMissingFile        = errors.New("missing PDF file")
	ErrNoText             = errors.New("no extractable text in PDF")
	ErrUnknownModel       = errors.New("unknown model")
	ErrUnknownSummaryType = errors.New("unknown summary type")
)

// IsInputError reports whether err is caused by invalid user input
// rather than by a failing model provider.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrNoText) ||
		errors.Is(err, ErrUnknownModel) ||
		errors.Is(err, ErrUnknownSummaryType)
}
