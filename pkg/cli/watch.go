package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/agentlog/agentlog/pkg/feed"
	"github.com/urfave/cli/v3"
)

func watchCommand() *cli.Command {
	var (
		cfg        config
		configPath string
		theme      string
		maxShown   int64
		interval   int64
		noStats    bool
		filters    bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a YAML display config",
			Sources:     cli.EnvVars("AGENTLOG_FEED_CONFIG"),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "Display theme (dark, plain)",
			Destination: &theme,
		},
		&cli.IntFlag{
			Name:        "max-activities",
			Usage:       "Maximum records shown at once",
			Destination: &maxShown,
		},
		&cli.IntFlag{
			Name:        "refresh-interval",
			Usage:       "Re-pull cadence in milliseconds",
			Destination: &interval,
		},
		&cli.BoolFlag{
			Name:        "no-stats",
			Usage:       "Suppress the statistics header",
			Destination: &noStats,
		},
		&cli.BoolFlag{
			Name:        "show-filters",
			Usage:       "Print the observed filterable values",
			Destination: &filters,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "watch",
		Usage: "Render the activity feed live",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			display := feed.DefaultConfig()
			if configPath != "" {
				loaded, err := feed.LoadConfig(configPath)
				if err != nil {
					return err
				}
				display = loaded
			}
			if theme != "" {
				display.Theme = theme
			}
			if maxShown > 0 {
				display.MaxActivities = int(maxShown)
			}
			if interval > 0 {
				display.RefreshInterval = int(interval)
			}
			if noStats {
				display.ShowStats = false
			}
			if filters {
				display.ShowFilters = true
			}

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			watcher := feed.NewWatcher(st, display, c.Root().Writer)
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
