package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentlog/agentlog/pkg/feed"
	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/store"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func listCommand() *cli.Command {
	var (
		cfg     config
		agent   string
		actType string
		status  string
		limit   int64
		asJSON  bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "agent",
			Aliases:     []string{"a"},
			Usage:       "Only activities by this agent",
			Destination: &agent,
		},
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Only activities of this type",
			Destination: &actType,
		},
		&cli.StringFlag{
			Name:        "status",
			Aliases:     []string{"s"},
			Usage:       "Only activities with this status",
			Destination: &status,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of activities to list",
			Value:       0,
			Destination: &limit,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Output as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List recorded activities, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			activities := st.Query(ctx, store.QueryOptions{
				Agent:  agent,
				Type:   model.ActivityType(actType),
				Status: model.Status(status),
				Limit:  int(limit),
			})

			if asJSON {
				data, err := json.MarshalIndent(activities, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to encode activities")
				}
				fmt.Fprintln(c.Root().Writer, string(data))
				return nil
			}

			renderer := feed.NewRenderer(c.Root().Writer, "dark")
			for _, a := range activities {
				renderer.Print(a)
			}
			return nil
		},
	}
}
