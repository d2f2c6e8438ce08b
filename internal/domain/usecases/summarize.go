package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 2000
)

// SummarizeConfig tunes the summarization pipeline.
type SummarizeConfig struct {
	ChunkSize    int
	Temperature  float64
	MaxTokens    int
	Models       []entities.ModelOption
	DefaultModel string
	// KeyOptional disables the API key check for providers that need none.
	KeyOptional bool
}

// FileRequest is one summarization request as entered by the user.
type FileRequest struct {
	APIKey      string
	Model       string
	SummaryType string
	Upload      *entities.Upload
}

// ProgressFunc receives pipeline progress. It may be nil.
type ProgressFunc func(entities.Progress)

// SummarizeUseCase turns an uploaded PDF into a summary.
// Single Responsibility: extraction, chunking and the map/reduce prompt flow.
type SummarizeUseCase struct {
	llm    ports.LLMService
	parser ports.DocumentParser
	store  ports.SummaryStore
	cfg    SummarizeConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewSummarizeUseCase creates a SummarizeUseCase with injected dependencies.
// store may be nil, in which case results are not persisted.
func NewSummarizeUseCase(
	llm ports.LLMService,
	parser ports.DocumentParser,
	store ports.SummaryStore,
	cfg SummarizeConfig,
	logger *zap.Logger,
) *SummarizeUseCase {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.DefaultModel = cfg.Models[0].ID
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummarizeUseCase{
		llm:    llm,
		parser: parser,
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Models returns the selectable model list.
func (uc *SummarizeUseCase) Models() []entities.ModelOption {
	return uc.cfg.Models
}

// Formats returns the upload formats the parser accepts, e.g. "pdf".
func (uc *SummarizeUseCase) Formats() []string {
	return uc.parser.SupportedFormats()
}

// DefaultModel returns the model used when a request names none.
func (uc *SummarizeUseCase) DefaultModel() string {
	return uc.cfg.DefaultModel
}

// SummarizeFile validates the request, extracts the PDF text and summarizes it.
// Checks run in order: API key, file, model, summary type, extracted text.
func (uc *SummarizeUseCase) SummarizeFile(ctx context.Context, req FileRequest, progress ProgressFunc) (*entities.Summary, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" && !uc.cfg.KeyOptional {
		return nil, ErrMissingAPIKey
	}
	if req.Upload.Empty() {
		return nil, ErrMissingFile
	}
	model, err := uc.resolveModel(req.Model)
	if err != nil {
		return nil, err
	}
	summaryType, err := entities.ParseSummaryType(req.SummaryType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSummaryType, req.SummaryType)
	}

	report(progress, entities.Progress{Stage: entities.StageReading, Message: "Reading PDF..."})

	doc, err := uc.parser.Parse(ctx, req.Upload.Data, req.Upload.Name)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, ErrNoText
	}

	report(progress, entities.Progress{
		Stage:   entities.StageExtracted,
		Message: fmt.Sprintf("Extracted %d characters from %d pages", doc.Characters(), doc.Pages),
	})

	return uc.SummarizeDocument(ctx, doc, apiKey, model, summaryType, progress)
}

// SummarizeDocument runs the chunk/summarize flow over an already extracted document.
// One chunk costs one model call; N chunks cost N+1. The first failing call aborts
// the run and nothing is returned or stored.
func (uc *SummarizeUseCase) SummarizeDocument(
	ctx context.Context,
	doc *entities.Document,
	apiKey, model string,
	summaryType entities.SummaryType,
	progress ProgressFunc,
) (*entities.Summary, error) {
	start := uc.now()

	chunks := SplitText(doc.Text, uc.cfg.ChunkSize)
	if len(chunks) == 0 {
		return nil, ErrNoText
	}

	uc.logger.Info("summarizing document",
		zap.String("file", doc.Name),
		zap.Int("characters", doc.Characters()),
		zap.Int("pages", doc.Pages),
		zap.Int("chunks", len(chunks)),
		zap.String("model", model),
		zap.String("type", string(summaryType)),
	)

	var text string
	if len(chunks) == 1 {
		out, err := uc.complete(ctx, apiKey, model, buildSinglePrompt(doc.Text, summaryType))
		if err != nil {
			return nil, fmt.Errorf("summarizing document: %w", err)
		}
		text = out
	} else {
		out, err := uc.mapReduce(ctx, chunks, apiKey, model, summaryType, progress)
		if err != nil {
			return nil, err
		}
		text = out
	}

	summary := &entities.Summary{
		ID:         uuid.NewString(),
		FileName:   doc.Name,
		Model:      model,
		Type:       summaryType,
		Characters: doc.Characters(),
		Pages:      doc.Pages,
		Chunks:     len(chunks),
		Text:       text,
		CreatedAt:  uc.now(),
	}
	summary.Duration = summary.CreatedAt.Sub(start)

	report(progress, entities.Progress{
		Stage:    entities.StageDone,
		Current:  len(chunks),
		Total:    len(chunks),
		Fraction: 1,
		Message:  "Summary generated successfully",
	})

	if uc.store != nil {
		if err := uc.store.Save(ctx, summary); err != nil {
			uc.logger.Error("saving summary", zap.String("id", summary.ID), zap.Error(err))
		}
	}

	return summary, nil
}

// mapReduce summarizes every chunk in order, then merges the section summaries.
func (uc *SummarizeUseCase) mapReduce(
	ctx context.Context,
	chunks []string,
	apiKey, model string,
	summaryType entities.SummaryType,
	progress ProgressFunc,
) (string, error) {
	n := len(chunks)
	sections := make([]string, 0, n)

	for i, chunk := range chunks {
		out, err := uc.complete(ctx, apiKey, model, buildChunkPrompt(chunk))
		if err != nil {
			return "", fmt.Errorf("summarizing chunk %d/%d: %w", i+1, n, err)
		}
		sections = append(sections, out)

		report(progress, entities.Progress{
			Stage:    entities.StageChunk,
			Current:  i + 1,
			Total:    n,
			Fraction: float64(i+1) / float64(n+1),
			Message:  fmt.Sprintf("Processing chunk %d/%d...", i+1, n),
		})
	}

	report(progress, entities.Progress{
		Stage:    entities.StageCombining,
		Current:  n,
		Total:    n,
		Fraction: float64(n) / float64(n+1),
		Message:  "Combining summaries...",
	})

	out, err := uc.complete(ctx, apiKey, model, buildFinalPrompt(sections, summaryType))
	if err != nil {
		return "", fmt.Errorf("combining summaries: %w", err)
	}
	return out, nil
}

func (uc *SummarizeUseCase) complete(ctx context.Context, apiKey, model, prompt string) (string, error) {
	return uc.llm.Complete(ctx, ports.CompletionRequest{
		APIKey:      apiKey,
		Model:       model,
		Prompt:      prompt,
		Temperature: uc.cfg.Temperature,
		MaxTokens:   uc.cfg.MaxTokens,
	})
}

func (uc *SummarizeUseCase) resolveModel(model string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = uc.cfg.DefaultModel
	}
	if model == "" {
		return "", ErrUnknownModel
	}
	if len(uc.cfg.Models) == 0 {
		return model, nil
	}
	for _, m := range uc.cfg.Models {
		if m.ID == model {
			return model, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
}

func report(fn ProgressFunc, p entities.Progress) {
	if fn != nil {
		fn(p)
	}
}
