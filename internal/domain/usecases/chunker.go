// Package usecases contains application business rules.
// Clean Architecture: usecases orchestrate entities and depend on port interfaces,
// never on concrete adapters.
package usecases

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the target chunk size in characters.
const DefaultChunkSize = 3000

// SplitText splits text on whitespace into chunks of roughly chunkSize characters.
// Each word counts its character count plus one; a chunk is closed as soon as the running size
// reaches chunkSize. Words inside a chunk are joined by single spaces.
func SplitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	size := 0

	for _, word := range words {
		current = append(current, word)
		size += utf8.RuneCountInString(word) + 1

		if size >= chunkSize {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			size = 0
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
