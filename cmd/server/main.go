// Command server runs the lecture notes summarizer web UI and API.
package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/app"
	"github.com/0xcro3dile/lecturesum-go/internal/config"
	"github.com/0xcro3dile/lecturesum-go/internal/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log, _ := zap.NewProduction()
		log.Fatal("failed to load config", zap.Error(err))
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log, _ = zap.NewProduction()
		log.Warn("invalid logging config, fallback to zap production logger", zap.Error(err))
	}
	defer log.Sync()

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}
	defer application.Close()

	srv, err := application.Server()
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Watch.Enabled {
		go func() {
			if err := application.RunInbox(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("inbox watcher stopped", zap.Error(err))
			}
		}()
	}

	log.Info("open the summarizer", zap.String("url", "http://localhost"+srv.Addr()))
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		return
	}
	log.Info("server exited")
}
