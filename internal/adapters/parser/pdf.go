// Package parser provides document parsing adapters.
// Clean Architecture: Adapter implementing ports.DocumentParser.
// PDF text extraction is done in-process with ledongthuc/pdf.
package parser

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// ErrNotPDF is returned for data that does not start with the PDF header.
var ErrNotPDF = errors.New("file is not a PDF")

var pdfMagic = []byte("%PDF-")

// PDFParser implements ports.DocumentParser for PDF files.
type PDFParser struct{}

// NewPDFParser creates a new PDF parser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse extracts the text of every page, in page order.
// Pages without extractable text are skipped; the page count still includes them.
func (p *PDFParser) Parse(ctx context.Context, data []byte, filename string) (doc *entities.Document, err error) {
	if !IsPDF(data) {
		return nil, ErrNotPDF
	}

	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("reading PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	pages := reader.NumPage()
	texts := make([]string, 0, pages)

	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts = append(texts, text)
	}

	return &entities.Document{
		ID:    generateDocID(data),
		Name:  filename,
		Text:  strings.Join(texts, "\n"),
		Pages: pages,
		Size:  int64(len(data)),
	}, nil
}

// SupportedFormats returns formats this parser handles.
func (p *PDFParser) SupportedFormats() []string {
	return []string{"pdf"}
}

// IsPDF checks the magic bytes at the start of data.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// generateDocID creates a deterministic ID from the document bytes.
func generateDocID(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
