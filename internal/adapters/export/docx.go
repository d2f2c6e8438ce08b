package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// Paragraph styles shipped in the godocx default template. The list styles are
// bound to its numbering definitions, so Word draws the bullets and numbers.
const (
	styleSubtitle   = "Subtitle"
	styleListBullet = "ListBullet"
	styleListNumber = "ListNumber"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet   = regexp.MustCompile(`^[-*•]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+[.)]\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

type blockKind int

const (
	blockText blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
)

// block is one non-empty summary line with its markdown marker removed.
type block struct {
	kind  blockKind
	level int // heading level, 1-6
	text  string
}

// parseBlocks classifies summary lines. Blank lines and "---" rules are dropped.
func parseBlocks(text string) []block {
	var blocks []block
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "---":
		case reHeading.MatchString(line):
			m := reHeading.FindStringSubmatch(line)
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case reBullet.MatchString(line):
			blocks = append(blocks, block{kind: blockBullet, text: reBullet.FindStringSubmatch(line)[1]})
		case reNumbered.MatchString(line):
			blocks = append(blocks, block{kind: blockNumbered, text: reNumbered.FindStringSubmatch(line)[1]})
		default:
			blocks = append(blocks, block{kind: blockText, text: line})
		}
	}
	return blocks
}

// Docx renders the summary as a Word document. Headings use the Heading styles,
// "-" lines become a bulleted list and "1." lines a numbered list.
func Docx(s *entities.Summary) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	if _, err := doc.AddHeading("Summary of "+s.FileName, 0); err != nil {
		return nil, err
	}
	doc.AddParagraph(fmt.Sprintf("%s summary · %s · %d pages", s.Type, s.Model, s.Pages)).Style(styleSubtitle)

	for _, b := range parseBlocks(s.Text) {
		switch b.kind {
		case blockHeading:
			if _, err := doc.AddHeading(stripInline(b.text), uint(b.level)); err != nil {
				return nil, err
			}
		case blockBullet:
			p := doc.AddParagraph("")
			p.Style(styleListBullet)
			addInline(p, b.text)
		case blockNumbered:
			p := doc.AddParagraph("")
			p.Style(styleListNumber)
			addInline(p, b.text)
		default:
			addInline(doc.AddParagraph(""), b.text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	return buf.Bytes(), nil
}

// addInline appends text to p, turning **spans** into bold runs.
func addInline(p *docx.Paragraph, text string) {
	last := 0
	for _, loc := range reBold.FindAllStringSubmatchIndex(text, -1) {
		if plain := stripInline(text[last:loc[0]]); plain != "" {
			p.AddText(plain)
		}
		p.AddText(stripInline(text[loc[2]:loc[3]])).Bold(true)
		last = loc[1]
	}
	if rest := stripInline(text[last:]); rest != "" {
		p.AddText(rest)
	}
}

var inlineMarkers = strings.NewReplacer("**", "", "__", "", "`", "")

func stripInline(s string) string {
	return inlineMarkers.Replace(s)
}
