package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

const defaultSettleDelay = 2 * time.Second

// InboxConfig holds the fixed request settings applied to every dropped file.
type InboxConfig struct {
	APIKey      string
	Model       string
	SummaryType string
	// SettleDelay is how long a file must stay quiet before it is processed.
	SettleDelay time.Duration
}

// InboxUseCase summarizes PDFs that appear in a watched directory.
type InboxUseCase struct {
	summarizer *SummarizeUseCase
	loader     ports.DocumentLoader
	writer     ports.SummaryWriter
	cfg        InboxConfig
	logger     *zap.Logger
}

// NewInboxUseCase creates an InboxUseCase.
func NewInboxUseCase(
	summarizer *SummarizeUseCase,
	loader ports.DocumentLoader,
	writer ports.SummaryWriter,
	cfg InboxConfig,
	logger *zap.Logger,
) *InboxUseCase {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InboxUseCase{
		summarizer: summarizer,
		loader:     loader,
		writer:     writer,
		cfg:        cfg,
		logger:     logger,
	}
}

// Extensions returns the file extensions the inbox picks up.
func (uc *InboxUseCase) Extensions() []string {
	return uc.loader.SupportedExtensions()
}

// Run consumes file events until ctx is cancelled or the channel closes.
// Files are processed one at a time once they have been quiet for SettleDelay.
func (uc *InboxUseCase) Run(ctx context.Context, events <-chan ports.FileEvent) error {
	pending := make(map[string]time.Time)

	tick := uc.cfg.SettleDelay / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				for path := range pending {
					uc.handle(ctx, path)
				}
				return nil
			}
			switch ev.Operation {
			case ports.FileCreated, ports.FileModified:
				pending[ev.Path] = time.Now()
			case ports.FileDeleted:
				delete(pending, ev.Path)
			}

		case now := <-ticker.C:
			for path, at := range pending {
				if now.Sub(at) < uc.cfg.SettleDelay {
					continue
				}
				delete(pending, path)
				uc.handle(ctx, path)
			}
		}
	}
}

// Process summarizes a single file and writes the result through the writer.
func (uc *InboxUseCase) Process(ctx context.Context, path string) (*entities.Summary, string, error) {
	upload, err := uc.loader.Load(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("loading %s: %w", path, err)
	}

	summary, err := uc.summarizer.SummarizeFile(ctx, FileRequest{
		APIKey:      uc.cfg.APIKey,
		Model:       uc.cfg.Model,
		SummaryType: uc.cfg.SummaryType,
		Upload:      upload,
	}, nil)
	if err != nil {
		return nil, "", err
	}

	out, err := uc.writer.Write(ctx, summary)
	if err != nil {
		return summary, "", fmt.Errorf("writing summary: %w", err)
	}
	return summary, out, nil
}

func (uc *InboxUseCase) handle(ctx context.Context, path string) {
	name := filepath.Base(path)
	uc.logger.Info("inbox file detected", zap.String("file", name))

	summary, out, err := uc.Process(ctx, path)
	if err != nil {
		uc.logger.Error("inbox summary failed", zap.String("file", name), zap.Error(err))
		return
	}
	uc.logger.Info("inbox summary written",
		zap.String("file", name),
		zap.String("id", summary.ID),
		zap.String("output", out),
	)
}
