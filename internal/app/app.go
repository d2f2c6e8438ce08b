// Package app wires configuration into the adapters and use cases.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/adapters/export"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/llm"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/loader"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/parser"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/store"
	"github.com/0xcro3dile/lecturesum-go/internal/config"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/lecturesum-go/internal/infrastructure/http"
)

// App holds the long-lived components built from one Config.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	LLM        ports.LLMService
	Store      ports.SummaryStore
	Summarizer *usecases.SummarizeUseCase
}

// New builds the LLM client, the history store and the summarizer.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc, err := llm.New(cfg.LLMOptions())
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}

	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}

	summarizer := usecases.NewSummarizeUseCase(svc, parser.NewPDFParser(), st, usecases.SummarizeConfig{
		ChunkSize:    cfg.Summarizer.ChunkSize,
		Temperature:  cfg.LLM.Temperature,
		MaxTokens:    cfg.LLM.MaxTokens,
		Models:       cfg.LLM.Models,
		DefaultModel: cfg.LLM.DefaultModel,
		KeyOptional:  !cfg.KeyRequired(),
	}, logger.Named("summarizer"))

	logger.Info("app initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("default_model", cfg.LLM.DefaultModel),
		zap.String("store", cfg.Store.Driver),
		zap.Int("chunk_size", cfg.Summarizer.ChunkSize),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		LLM:        svc,
		Store:      st,
		Summarizer: summarizer,
	}, nil
}

// Server returns the HTTP server for the app.
func (a *App) Server() (*httpserver.Server, error) {
	return httpserver.NewServer(a.Summarizer, a.Store, httpserver.Config{
		Addr:           a.Config.Server.Addr,
		MaxUploadBytes: a.Config.MaxUploadBytes(),
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		APIKey:         a.Config.LLM.APIKey,
		KeyRequired:    a.Config.KeyRequired(),
	}, a.Logger.Named("http"))
}

// Inbox returns the use case that summarizes PDFs dropped into the inbox.
func (a *App) Inbox() *usecases.InboxUseCase {
	return usecases.NewInboxUseCase(
		a.Summarizer,
		loader.NewFileLoader(a.Config.MaxUploadBytes()),
		export.NewDirWriter(a.Config.Watch.Outbox, export.FormatText),
		usecases.InboxConfig{
			APIKey:      a.Config.LLM.APIKey,
			Model:       a.Config.Watch.Model,
			SummaryType: a.Config.Watch.SummaryType,
			SettleDelay: a.Config.Watch.SettleDelay,
		},
		a.Logger.Named("inbox"),
	)
}

// RunInbox watches the configured inbox until ctx is cancelled.
func (a *App) RunInbox(ctx context.Context) error {
	inbox := a.Inbox()
	fw, err := filewatcher.NewFSNotifyWatcher(inbox.Extensions(), a.Logger.Named("watcher"))
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	var watcher ports.FileWatcher = fw
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, a.Config.Watch.Inbox)
	if err != nil {
		return fmt.Errorf("watching %s: %w", a.Config.Watch.Inbox, err)
	}

	a.Logger.Info("watching inbox",
		zap.String("inbox", a.Config.Watch.Inbox),
		zap.String("outbox", a.Config.Watch.Outbox),
	)
	return inbox.Run(ctx, events)
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
