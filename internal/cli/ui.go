package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/skycast/internal/config"
	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/tui"
)

// LogFileName is written next to the cache while the UI owns the terminal
const LogFileName = "skycast.log"

// UIParams holds parameters for the UI command
type UIParams struct {
	GlobalParams
}

// UI runs the interactive lookup screen
func UI(ctx context.Context, params UIParams) error {
	cfg, path, err := loadConfig(params.GlobalParams, nil)
	if err != nil {
		return err
	}

	logPath := filepath.Join(filepath.Dir(cfg.CachePath()), LogFileName)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	log := logger.New(cfg.Log.Level, logFile, logger.WithFormat(cfg.Log.Format))
	comp, err := newComponents(cfg, path, log)
	if err != nil {
		return err
	}
	defer comp.logMetrics()

	model := tui.New(comp.lookup, uiOptions(cfg, log))
	return tui.Run(ctx, model)
}

func uiOptions(cfg *config.Config, log *logger.Logger) tui.Options {
	return tui.Options{
		Threshold:  cfg.Autocomplete.Threshold,
		MaxVisible: cfg.Autocomplete.MaxVisible,
		Timeout:    cfg.API.Timeout,
		Logger:     log,
	}
}
