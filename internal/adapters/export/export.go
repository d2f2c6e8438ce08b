// Package export renders finished summaries into downloadable files.
package export

import (
	"fmt"
	"strings"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// Format is a download format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatDocx     Format = "docx"
)

// ParseFormat maps a query value to a Format. Empty means plain text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "docx", "word":
		return FormatDocx, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// DownloadName removes every ".pdf" from the upload name and appends "_summary.<ext>".
func DownloadName(fileName string, f Format) string {
	base := strings.ReplaceAll(fileName, ".pdf", "")
	if base == "" {
		base = "lecture"
	}
	return base + "_summary." + string(f)
}

// Render returns the summary encoded in the given format.
func Render(s *entities.Summary, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(s.Text), nil
	case FormatMarkdown:
		return []byte(Markdown(s)), nil
	case FormatDocx:
		return Docx(s)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// Markdown wraps the summary text with a title and a metadata line.
func Markdown(s *entities.Summary) string {
	var sb strings.Builder
	sb.WriteString("# Summary of ")
	sb.WriteString(s.FileName)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "_%s summary by %s, %d pages, %d characters_\n\n", s.Type, s.Model, s.Pages, s.Characters)
	sb.WriteString(strings.TrimSpace(s.Text))
	sb.WriteString("\n")
	return sb.String()
}
