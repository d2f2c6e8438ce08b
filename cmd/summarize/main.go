// Command summarize summarizes one PDF from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/adapters/export"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/loader"
	"github.com/0xcro3dile/lecturesum-go/internal/app"
	"github.com/0xcro3dile/lecturesum-go/internal/config"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/usecases"
	"github.com/0xcro3dile/lecturesum-go/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 2 on usage errors and 1 when summarizing fails.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultConfigPath, "Path to YAML config file")
	summaryType := fs.String("type", "concise", "Summary type: concise or detailed")
	model := fs.String("model", "", "Model id (default from config)")
	apiKey := fs.String("api-key", "", "API key (default from config or environment)")
	outDir := fs.String("out", ".", "Directory for the _summary.txt file")
	format := fs.String("format", "txt", "Output format: txt, md or docx")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: summarize [flags] file.pdf\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	outFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	key := *apiKey
	if key == "" {
		key = cfg.LLM.APIKey
	}
	if key == "" && cfg.KeyRequired() {
		fmt.Fprintln(stderr, "❌ Please enter your API key")
		return 1
	}

	// Progress goes to stderr, so keep the logger quiet unless asked otherwise.
	if os.Getenv("LECTURESUM_LOG_LEVEL") == "" {
		cfg.Logging.Level = "warn"
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize app", zap.Error(err))
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	upload, err := loader.NewFileLoader(cfg.MaxUploadBytes()).Load(ctx, fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "❌", err)
		return 1
	}

	summary, err := application.Summarizer.SummarizeFile(ctx, usecases.FileRequest{
		APIKey:      key,
		Model:       *model,
		SummaryType: *summaryType,
		Upload:      upload,
	}, func(p entities.Progress) {
		fmt.Fprintf(stderr, "[%3.0f%%] %s\n", p.Fraction*100, p.Message)
	})
	if err != nil {
		fmt.Fprintln(stderr, "❌ An error occurred:", err)
		if !usecases.IsInputError(err) {
			fmt.Fprintln(stderr, "💡 Tip: Make sure your API key is valid and you have available credits")
		}
		return 1
	}

	fmt.Fprintln(stdout, summary.Text)

	path, err := export.NewDirWriter(*outDir, outFormat).Write(ctx, summary)
	if err != nil {
		fmt.Fprintln(stderr, "❌", err)
		return 1
	}
	fmt.Fprintln(stderr, "📥 Summary written to", path)
	return 0
}
