package cli

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/skycast/internal/cache"
	"github.com/NikitaCOEUR/skycast/internal/logger"
)

// CleanParams holds parameters for the Clean function
type CleanParams struct {
	GlobalParams
	Expired bool
}

// Clean removes cache entries
func Clean(params CleanParams) error {
	cfg, _, err := loadConfig(params.GlobalParams, nil)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, nil, logger.WithFormat(cfg.Log.Format))

	c, err := cache.New(cfg.CachePath())
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	if c.Recovered() {
		log.Warn().Str("path", c.Path()).Msg("Cache file was unreadable; it will be rewritten")
	}

	if params.Expired {
		removed, err := c.PurgeExpired(time.Now())
		if err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
		log.Info().Int("removed", removed).Msg("Expired cache entries removed")
		fmt.Printf("✓ Removed %d expired cache entries\n", removed)
		return nil
	}

	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	log.Info().Str("path", c.Path()).Msg("All cache entries cleared")
	fmt.Println("✓ All cache entries cleared")
	return nil
}
