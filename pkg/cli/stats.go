package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentlog/agentlog/pkg/feed"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func statsCommand() *cli.Command {
	var (
		cfg    config
		asJSON bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Output as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "stats",
		Usage: "Aggregate statistics over the activity journal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			stats := st.Aggregate(ctx)

			if asJSON {
				data, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to encode stats")
				}
				fmt.Fprintln(c.Root().Writer, string(data))
				return nil
			}

			feed.NewRenderer(c.Root().Writer, "dark").PrintStats(stats)
			return nil
		},
	}
}
