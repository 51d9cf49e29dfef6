package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/nordvik/glance/internal"
	pkgconfig "github.com/nordvik/glance/pkg/config"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func loadOptions(cmd *cli.Command) ([]internal.Option, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}, nil
}

func runDash(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.RunDash(ctx, opts...)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.RunServe(ctx, opts...)
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, opts...)
}

func main() {
	configFlag := func() *cli.StringFlag {
		return &cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("APP_CONFIG_FILE"),
		}
	}

	cmd := &cli.Command{
		Name:    "glance",
		Usage:   "Personal activity recall: terminal dashboard, fixture backend, and MCP tools",
		Version: version,
		Flags:   []cli.Flag{configFlag()},
		Action:  runDash,
		Commands: []*cli.Command{
			{
				Name:   "dash",
				Usage:  "Run the terminal dashboard (default)",
				Flags:  []cli.Flag{configFlag()},
				Action: runDash,
			},
			{
				Name:   "serve",
				Usage:  "Run the backend: captures index, watcher, and recall REST API",
				Flags:  []cli.Flag{configFlag()},
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP stdio server exposing recall tools",
				Flags:  []cli.Flag{configFlag()},
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
