package cli

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/skycast/internal/timing"
	"github.com/NikitaCOEUR/skycast/internal/view"
)

// CurrentParams holds parameters for the Current command
type CurrentParams struct {
	GlobalParams
	City   string
	Format string // text/template with sprig functions
}

// Current prints the current conditions for a city
func Current(ctx context.Context, params CurrentParams) error {
	timer := timing.NewTimer()
	comp, err := initializeComponents(params.GlobalParams, nil)
	if err != nil {
		return err
	}
	timer.Mark("init")
	defer comp.logMetrics()

	snap, err := comp.lookup.Current(ctx, params.City)
	if err != nil {
		return fmt.Errorf("weather lookup failed: %w", err)
	}
	timer.Mark("lookup")
	comp.log.Debug().Str("timing", timer.Summary()).Msg("Lookup complete")

	if params.Format == "" {
		fmt.Println(view.RenderSnapshot(snap))
		return nil
	}

	out, err := view.RenderTemplate(params.Format, snap)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
