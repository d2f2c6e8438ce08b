package usecases

import (
	"strings"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

// buildSinglePrompt is used when the whole document fits in one chunk.
func buildSinglePrompt(text string, st entities.SummaryType) string {
	var sb strings.Builder
	if st == entities.SummaryDetailed {
		sb.WriteString("Write a detailed summary of the following lecture notes. Include:\n")
		sb.WriteString("- Main topics and concepts\n")
		sb.WriteString("- Key definitions and explanations\n")
		sb.WriteString("- Important examples or case studies\n")
		sb.WriteString("- Critical takeaways\n\n")
		sb.WriteString(text)
		sb.WriteString("\n\nDETAILED SUMMARY:")
		return sb.String()
	}

	sb.WriteString("Write a concise summary of the following lecture notes. ")
	sb.WriteString("Focus on key concepts, main ideas, and important takeaways:\n\n")
	sb.WriteString(text)
	sb.WriteString("\n\nCONCISE SUMMARY:")
	return sb.String()
}

// buildChunkPrompt asks for the key points of one section.
func buildChunkPrompt(chunk string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the key points from this section of lecture notes:\n\n")
	sb.WriteString(chunk)
	sb.WriteString("\n\nSUMMARY:")
	return sb.String()
}

// buildFinalPrompt merges per-section summaries into the final summary.
func buildFinalPrompt(sectionSummaries []string, st entities.SummaryType) string {
	combined := strings.Join(sectionSummaries, "\n\n")

	var sb strings.Builder
	if st == entities.SummaryDetailed {
		sb.WriteString("Based on these section summaries from lecture notes, ")
		sb.WriteString("create a comprehensive final summary that includes:\n")
		sb.WriteString("- All main topics and concepts\n")
		sb.WriteString("- Key definitions and explanations\n")
		sb.WriteString("- Important examples\n")
		sb.WriteString("- Critical takeaways\n\n")
		sb.WriteString(combined)
		sb.WriteString("\n\nFINAL DETAILED SUMMARY:")
		return sb.String()
	}

	sb.WriteString("Based on these section summaries from lecture notes, ")
	sb.WriteString("create a final concise summary that captures all key concepts:\n\n")
	sb.WriteString(combined)
	sb.WriteString("\n\nFINAL CONCISE SUMMARY:")
	return sb.String()
}
