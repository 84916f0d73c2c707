package main

import (
	"errors"
	"log/slog"
	"os"

	"SketchBoard/internal/ai"
	"SketchBoard/internal/config"
	"SketchBoard/internal/render"
	"SketchBoard/internal/share"
	"SketchBoard/internal/state"
	"SketchBoard/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	history := state.NewHistory()
	renderer := render.New(cfg.Board.Width, cfg.Board.Height, cfg.Board.Background)

	analyzer, err := ai.FromConfig(cfg, logger)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			logger.Info("AI analysis disabled", "reason", err)
		} else {
			logger.Warn("AI analysis unavailable", "err", err)
		}
		analyzer = nil
	} else {
		logger.Info("AI analysis enabled", "provider", analyzer.Name())
	}

	var feed *share.Server
	if cfg.Share.Enabled {
		feed = share.NewServer(cfg.Share.Port, func() ([]byte, error) {
			return renderer.PNG(history.Visible())
		}, logger)
		if err := feed.Start(); err != nil {
			logger.Error("share server failed to start", "err", err)
			feed = nil
		} else {
			defer feed.Close()
		}
	}

	ui.New(cfg, history, renderer, analyzer, feed, logger).Run()
}
