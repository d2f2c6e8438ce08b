package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

var testModels = []entities.ModelOption{
	{ID: "llama-3.3-70b-versatile"},
	{ID: "llama-3.1-8b-instant"},
}

func newTestUseCase(llm *mockLLM, parser *mockParser, store *mockStore, chunkSize int) *SummarizeUseCase {
	var s ports.SummaryStore
	if store != nil {
		s = store
	}
	return NewSummarizeUseCase(llm, parser, s, SummarizeConfig{
		ChunkSize: chunkSize,
		Models:    testModels,
	}, nil)
}

func pdfUpload() *entities.Upload {
	return &entities.Upload{Name: "lecture1.pdf", Data: []byte("%PDF-1.4 ...")}
}

func TestSummarizeFile_SingleChunkMakesOneCall(t *testing.T) {
	llm := &mockLLM{}
	parser := &mockParser{doc: &entities.Document{Text: "Short lecture about cells.", Pages: 1}}
	store := &mockStore{}
	uc := newTestUseCase(llm, parser, store, 3000)

	summary, err := uc.SummarizeFile(context.Background(), FileRequest{
		APIKey: "gsk_test",
		Upload: pdfUpload(),
	}, nil)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if llm.calls() != 1 {
		t.Fatalf("expected 1 call, got %d", llm.calls())
	}
	req := llm.requests[0]
	if !strings.HasPrefix(req.Prompt, "Write a concise summary") {
		t.Errorf("expected concise single prompt, got %q", req.Prompt)
	}
	if req.Model != "llama-3.3-70b-versatile" {
		t.Errorf("expected default model, got %s", req.Model)
	}
	if req.Temperature != 0.3 || req.MaxTokens != 2000 {
		t.Errorf("unexpected sampling settings: %v %d", req.Temperature, req.MaxTokens)
	}
	if req.APIKey != "gsk_test" {
		t.Errorf("api key not forwarded: %q", req.APIKey)
	}

	if summary.Text != "summary-1" || summary.Chunks != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.FileName != "lecture1.pdf" || summary.ID == "" {
		t.Errorf("summary metadata missing: %+v", summary)
	}
	if store.count() != 1 {
		t.Errorf("expected summary to be stored")
	}
}

func TestSummarizeFile_MultipleChunksMakeNPlusOneCalls(t *testing.T) {
	text := strings.Repeat("photosynthesis converts light energy ", 30)
	llm := &mockLLM{}
	parser := &mockParser{doc: &entities.Document{Text: text, Pages: 3}}
	uc := newTestUseCase(llm, parser, nil, 100)

	n := len(SplitText(text, 100))
	if n < 2 {
		t.Fatalf("test text should produce several chunks, got %d", n)
	}

	var progress []entities.Progress
	summary, err := uc.SummarizeFile(context.Background(), FileRequest{
		APIKey:      "key",
		SummaryType: "detailed",
		Upload:      pdfUpload(),
	}, func(p entities.Progress) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if llm.calls() != n+1 {
		t.Fatalf("expected %d calls, got %d", n+1, llm.calls())
	}
	for i := 0; i < n; i++ {
		if !strings.HasPrefix(llm.requests[i].Prompt, "Summarize the key points from this section") {
			t.Errorf("call %d should use the section prompt", i)
		}
	}

	final := llm.requests[n].Prompt
	if !strings.HasSuffix(final, "FINAL DETAILED SUMMARY:") {
		t.Errorf("final call should use detailed final prompt: %q", final)
	}
	if !strings.Contains(final, "summary-1\n\nsummary-2") {
		t.Errorf("section summaries should be joined by blank lines: %q", final)
	}
	if want := fmt.Sprintf("summary-%d", n+1); summary.Text != want {
		t.Errorf("summary should be the final call output, got %q", summary.Text)
	}
	if summary.Type != entities.SummaryDetailed || summary.Chunks != n {
		t.Errorf("unexpected summary metadata: %+v", summary)
	}

	var chunkEvents int
	var sawCombining bool
	for _, p := range progress {
		switch p.Stage {
		case entities.StageChunk:
			chunkEvents++
			want := float64(p.Current) / float64(n+1)
			if p.Fraction != want {
				t.Errorf("chunk %d fraction = %v, want %v", p.Current, p.Fraction, want)
			}
		case entities.StageCombining:
			sawCombining = true
		}
	}
	if chunkEvents != n || !sawCombining {
		t.Errorf("expected %d chunk events and a combining event, got %d/%v", n, chunkEvents, sawCombining)
	}
	if last := progress[len(progress)-1]; last.Stage != entities.StageDone || last.Fraction != 1 {
		t.Errorf("last progress should be done at 1.0, got %+v", last)
	}
}

func TestSummarizeFile_MissingAPIKeyMakesNoCalls(t *testing.T) {
	llm := &mockLLM{}
	parser := &mockParser{doc: &entities.Document{Text: "x"}}
	uc := newTestUseCase(llm, parser, nil, 0)

	_, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "  ", Upload: pdfUpload()}, nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if llm.calls() != 0 || parser.called != 0 {
		t.Error("no parse or network call should happen without a key")
	}
}

func TestSummarizeFile_MissingFileMakesNoCalls(t *testing.T) {
	llm := &mockLLM{}
	parser := &mockParser{doc: &entities.Document{Text: "x"}}
	uc := newTestUseCase(llm, parser, nil, 0)

	for _, upload := range []*entities.Upload{nil, {Name: "empty.pdf"}} {
		_, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "key", Upload: upload}, nil)
		if !errors.Is(err, ErrMissingFile) {
			t.Fatalf("expected ErrMissingFile, got %v", err)
		}
	}
	if llm.calls() != 0 || parser.called != 0 {
		t.Error("no parse or network call should happen without a file")
	}
}

func TestSummarizeFile_KeyCheckedBeforeFile(t *testing.T) {
	uc := newTestUseCase(&mockLLM{}, &mockParser{}, nil, 0)
	_, err := uc.SummarizeFile(context.Background(), FileRequest{}, nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("missing key should be reported first, got %v", err)
	}
}

func TestSummarizeFile_BlankTextIsRejected(t *testing.T) {
	llm := &mockLLM{}
	parser := &mockParser{doc: &entities.Document{Text: " \n\t ", Pages: 4}}
	uc := newTestUseCase(llm, parser, nil, 0)

	_, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "key", Upload: pdfUpload()}, nil)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
	if llm.calls() != 0 {
		t.Error("no model call expected for image-only PDF")
	}
}

func TestSummarizeFile_ParserError(t *testing.T) {
	parseErr := errors.New("broken xref")
	uc := newTestUseCase(&mockLLM{}, &mockParser{err: parseErr}, nil, 0)

	_, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "key", Upload: pdfUpload()}, nil)
	if !errors.Is(err, parseErr) {
		t.Errorf("expected wrapped parser error, got %v", err)
	}
}

func TestSummarizeFile_UnknownModelAndType(t *testing.T) {
	parser := &mockParser{doc: &entities.Document{Text: "x"}}
	uc := newTestUseCase(&mockLLM{}, parser, nil, 0)

	_, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "key", Model: "gpt-9", Upload: pdfUpload()}, nil)
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}

	_, err = uc.SummarizeFile(context.Background(), FileRequest{APIKey: "key", SummaryType: "haiku", Upload: pdfUpload()}, nil)
	if !errors.Is(err, ErrUnknownSummaryType) {
		t.Errorf("expected ErrUnknownSummaryType, got %v", err)
	}
	if parser.called != 0 {
		t.Error("parser should not run for invalid options")
	}
}

func TestSummarizeFile_APIErrorAbortsWithoutOutput(t *testing.T) {
	text := strings.Repeat("mitochondria is the powerhouse of the cell ", 30)
	apiErr := &ports.APIError{Provider: "groq", StatusCode: 401, Body: "invalid api key"}
	llm := &mockLLM{failOn: 2, err: apiErr}
	parser := &mockParser{doc: &entities.Document{Text: text, Pages: 2}}
	store := &mockStore{}
	uc := newTestUseCase(llm, parser, store, 100)

	summary, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "bad", Upload: pdfUpload()}, nil)
	if summary != nil {
		t.Error("no summary should be returned on API failure")
	}

	var got *ports.APIError
	if !errors.As(err, &got) || got.StatusCode != 401 {
		t.Fatalf("expected APIError 401, got %v", err)
	}
	if llm.calls() != 2 {
		t.Errorf("processing should stop at the failing call, made %d calls", llm.calls())
	}
	if store.count() != 0 {
		t.Error("nothing should be stored on failure")
	}
	if IsInputError(err) {
		t.Error("API failure should not be classified as input error")
	}
}

func TestSummarizeFile_StoreFailureDoesNotFailRequest(t *testing.T) {
	parser := &mockParser{doc: &entities.Document{Text: "short text"}}
	store := &mockStore{saveErr: errors.New("disk full")}
	uc := newTestUseCase(&mockLLM{}, parser, store, 0)

	summary, err := uc.SummarizeFile(context.Background(), FileRequest{APIKey: "key", Upload: pdfUpload()}, nil)
	if err != nil || summary == nil {
		t.Fatalf("store failure should be logged only, got %v", err)
	}
}

func TestSummarizeFile_KeyOptional(t *testing.T) {
	llm := &mockLLM{}
	parser := &mockParser{doc: &entities.Document{Text: "local model notes"}}
	uc := NewSummarizeUseCase(llm, parser, nil, SummarizeConfig{DefaultModel: "llama3.2", KeyOptional: true}, nil)

	if _, err := uc.SummarizeFile(context.Background(), FileRequest{Upload: pdfUpload()}, nil); err != nil {
		t.Fatalf("key should be optional: %v", err)
	}
	if llm.requests[0].Model != "llama3.2" {
		t.Errorf("unexpected model %s", llm.requests[0].Model)
	}
}
