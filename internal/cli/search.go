package cli

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/NikitaCOEUR/skycast/internal/autocomplete"
	"github.com/NikitaCOEUR/skycast/internal/timing"
)

// SearchParams holds parameters for the Search command
type SearchParams struct {
	GlobalParams
	Query string
	// Filter applies the autocomplete prefix filter and threshold
	Filter bool
}

// Search prints city suggestions for a query, one per line
func Search(ctx context.Context, params SearchParams) error {
	timer := timing.NewTimer()
	comp, err := initializeComponents(params.GlobalParams, nil)
	if err != nil {
		return err
	}
	timer.Mark("init")
	defer comp.logMetrics()

	threshold := comp.cfg.Autocomplete.Threshold
	if params.Filter && utf8.RuneCountInString(params.Query) < threshold {
		comp.log.Debug().Str("query", params.Query).Int("threshold", threshold).Msg("Query below threshold")
		return nil
	}

	names, err := comp.lookup.Suggest(ctx, params.Query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	timer.Mark("lookup")
	if params.Filter {
		names = autocomplete.Filter(params.Query, names, threshold)
	}
	comp.log.Debug().Str("timing", timer.Summary()).Int("results", len(names)).Msg("Search complete")

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
