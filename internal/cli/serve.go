package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/NikitaCOEUR/skycast/internal/logger"
	"github.com/NikitaCOEUR/skycast/internal/server"
)

// ServeParams holds parameters for the Serve command
type ServeParams struct {
	GlobalParams
	Addr string // overrides server.addr
}

// Serve runs the HTTP API until SIGINT or SIGTERM
func Serve(ctx context.Context, params ServeParams) error {
	cfg, path, err := loadConfig(params.GlobalParams, map[string]string{"server.addr": params.Addr})
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, nil, logger.WithJSON())
	comp, err := newComponents(cfg, path, log)
	if err != nil {
		return err
	}

	srv := server.New(comp.lookup, server.Options{
		Addr:      cfg.Server.Addr,
		Threshold: cfg.Autocomplete.Threshold,
		Metrics:   comp.metrics,
		Logger:    log,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
