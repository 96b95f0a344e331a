package cli

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/skycast/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	GlobalParams
}

// Status displays the current skycast configuration and cache status
func Status(params StatusParams) error {
	cfg, path, err := loadConfig(params.GlobalParams, nil)
	if err != nil {
		return err
	}

	data, err := status.Collect(cfg, path, time.Now())
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	fmt.Println(status.Render(data))
	return nil
}
