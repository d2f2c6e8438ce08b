// Package entities contains core business entities.
// These are pure domain objects with no external dependencies.
package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Upload is a raw file handed in by the user (form upload, CLI argument or inbox drop).
type Upload struct {
	Name string
	Data []byte
}

// Empty reports whether the upload carries no file content.
func (u *Upload) Empty() bool {
	return u == nil || len(u.Data) == 0
}

// Document is the plain-text extraction of an uploaded PDF.
// Clean Architecture: knows nothing about how the text was extracted.
type Document struct {
	ID    string
	Name  string
	Text  string
	Pages int
	Size  int64
}

// Characters returns the number of characters (code points) in the extracted text.
func (d *Document) Characters() int {
	return utf8.RuneCountInString(d.Text)
}

// SummaryType selects the prompt family used for a summary.
type SummaryType string

const (
	SummaryConcise  SummaryType = "Concise"
	SummaryDetailed SummaryType = "Detailed"
)

// SummaryTypes lists the selectable summary styles in display order.
func SummaryTypes() []SummaryType {
	return []SummaryType{SummaryConcise, SummaryDetailed}
}

// ParseSummaryType maps user input to a SummaryType. Empty input means Concise.
func ParseSummaryType(s string) (SummaryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "concise":
		return SummaryConcise, nil
	case "detailed":
		return SummaryDetailed, nil
	default:
		return "", fmt.Errorf("unknown summary type %q", s)
	}
}

// ModelOption is one entry of the selectable model list.
type ModelOption struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Hint  string `json:"hint,omitempty" yaml:"hint"`
}

// Summary is a finished summarization result.
type Summary struct {
	ID         string        `json:"id"`
	FileName   string        `json:"file_name"`
	Model      string        `json:"model"`
	Type       SummaryType   `json:"summary_type"`
	Characters int           `json:"characters"`
	Pages      int           `json:"pages"`
	Chunks     int           `json:"chunks"`
	Text       string        `json:"text"`
	CreatedAt  time.Time     `json:"created_at"`
	Duration   time.Duration `json:"duration"`
}

// Stage names a step of the summarization pipeline.
type Stage string

const (
	StageReading   Stage = "reading"
	StageExtracted Stage = "extracted"
	StageChunk     Stage = "chunk"
	StageCombining Stage = "combining"
	StageDone      Stage = "done"
)

// Progress is reported while a summary is being produced.
type Progress struct {
	Stage    Stage   `json:"stage"`
	Current  int     `json:"current"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
	Message  string  `json:"message"`
}
