// Package main is the entry point for the skycast CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	skycli "github.com/NikitaCOEUR/skycast/internal/cli"
	"github.com/NikitaCOEUR/skycast/internal/trace"
	"github.com/NikitaCOEUR/skycast/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()
	err := newApp().Run(context.Background(), os.Args)
	stopTrace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// completeCities offers cached city names for the word being completed
func completeCities(_ context.Context, cmd *cli.Command) {
	prefix := ""
	if n := cmd.Args().Len(); n > 0 {
		prefix = cmd.Args().Get(n - 1)
	}
	_ = skycli.CompleteCities(skycli.CompleteParams{GlobalParams: globalParams(cmd), Prefix: prefix})
}

// globalParams reads the root flags shared by every command
func globalParams(cmd *cli.Command) skycli.GlobalParams {
	return skycli.GlobalParams{
		LogLevel:   cmd.String("log-level"),
		ConfigPath: cmd.String("config"),
		APIURL:     cmd.String("api-url"),
		APIKey:     cmd.String("api-key"),
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "skycast",
		Usage:                 "Look up current weather with city autocomplete",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("SKYCAST_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: $XDG_CONFIG_HOME/skycast/config.yml)",
				Sources: cli.EnvVars("SKYCAST_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Weather API base URL",
				Sources: cli.EnvVars("SKYCAST_API_URL", "WEATHER_API_URL"),
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Weather API key",
				Sources: cli.EnvVars("SKYCAST_API_KEY", "WEATHER_API_KEY"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return skycli.UI(ctx, skycli.UIParams{GlobalParams: globalParams(cmd)})
		},
		Commands: []*cli.Command{
			{
				Name:  "ui",
				Usage: "Start the interactive lookup screen (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return skycli.UI(ctx, skycli.UIParams{GlobalParams: globalParams(cmd)})
				},
			},
			{
				Name:          "search",
				Usage:         "Print city suggestions for a query",
				ArgsUsage:     "<text>",
				ShellComplete: completeCities,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Apply the autocomplete prefix filter and threshold",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("search text required")
					}
					return skycli.Search(ctx, skycli.SearchParams{
						GlobalParams: globalParams(cmd),
						Query:        cmd.Args().Get(0),
						Filter:       cmd.Bool("filter"),
					})
				},
			},
			{
				Name:          "current",
				Usage:         "Print the current conditions for a city",
				ArgsUsage:     "<city>",
				ShellComplete: completeCities,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Go template rendered against the snapshot (sprig functions available)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return skycli.Current(ctx, skycli.CurrentParams{
						GlobalParams: globalParams(cmd),
						City:         cmd.Args().Get(0),
						Format:       cmd.String("format"),
					})
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the search and current-conditions JSON API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address (overrides server.addr)",
						Sources: cli.EnvVars("SKYCAST_ADDR"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return skycli.Serve(ctx, skycli.ServeParams{
						GlobalParams: globalParams(cmd),
						Addr:         cmd.String("addr"),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show configuration and cache status",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return skycli.Status(skycli.StatusParams{GlobalParams: globalParams(cmd)})
				},
			},
			{
				Name:  "clean",
				Usage: "Clean cache entries",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "expired",
						Aliases: []string{"e"},
						Usage:   "Only remove expired entries",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return skycli.Clean(skycli.CleanParams{
						GlobalParams: globalParams(cmd),
						Expired:      cmd.Bool("expired"),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return skycli.Init(cmd.String("config"))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a skycast configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return skycli.Validate(configPath)
				},
			},
			{
				Name:  "edit",
				Usage: "Edit or create the skycast configuration file",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return skycli.Edit(cmd.String("config"))
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for skycast configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return skycli.Schema(outputPath)
				},
			},
		},
	}
}
