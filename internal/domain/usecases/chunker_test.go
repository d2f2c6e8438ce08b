package usecases

import (
	"strings"
	"testing"
)

func TestSplitText_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t \n"} {
		if chunks := SplitText(in, 100); len(chunks) != 0 {
			t.Errorf("SplitText(%q) should produce no chunks, got %d", in, len(chunks))
		}
	}
}

func TestSplitText_ShortInputIsOneChunk(t *testing.T) {
	chunks := SplitText("Cells are the basic unit of life.", 3000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Cells are the basic unit of life." {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestSplitText_ConcatenationMatchesNormalizedInput(t *testing.T) {
	text := "Lecture 3:\n\nThermodynamics   covers energy,\theat and work.\n" +
		strings.Repeat("entropy always increases in an isolated system ", 40)

	chunks := SplitText(text, 120)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	normalized := strings.Join(strings.Fields(text), " ")
	if got := strings.Join(chunks, " "); got != normalized {
		t.Errorf("joined chunks differ from normalized input\n got: %q\nwant: %q", got, normalized)
	}
}

func TestSplitText_ClosesChunkWhenSizeReached(t *testing.T) {
	// "aaaa" counts 5, so the chunk closes after the second word (10 >= 10).
	chunks := SplitText("aaaa bbbb cccc dddd eeee", 10)
	want := []string{"aaaa bbbb", "cccc dddd", "eeee"}

	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %q", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitText_LongWordIsItsOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := SplitText("a "+long+" b", 10)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "a "+long || chunks[1] != "b" {
		t.Errorf("unexpected chunks: %q", chunks)
	}
}

func TestSplitText_DefaultChunkSize(t *testing.T) {
	text := strings.Repeat("word ", 1000) // 5000 counted characters
	if got := len(SplitText(text, 0)); got != 2 {
		t.Errorf("expected 2 chunks with default size, got %d", got)
	}
}

func TestSplitText_CountsCharactersNotBytes(t *testing.T) {
	// "été" is 3 characters but 5 bytes, so four words count 16 and stay in one chunk.
	chunks := SplitText("été été été été", 17)
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk, got %d: %q", len(chunks), chunks)
	}
}
