package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/store"
	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func logCommand() *cli.Command {
	var (
		cfg      config
		agent    string
		actType  string
		status   string
		metadata string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "agent",
			Aliases:     []string{"a"},
			Usage:       "Name of the agent recording the activity",
			Sources:     cli.EnvVars("AGENTLOG_AGENT"),
			Destination: &agent,
		},
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Activity type (commit, analysis, detection, ...)",
			Value:       string(model.TypeInfo),
			Sources:     cli.EnvVars("AGENTLOG_TYPE"),
			Destination: &actType,
		},
		&cli.StringFlag{
			Name:        "status",
			Aliases:     []string{"s"},
			Usage:       "Activity status (success, processing, error, warning, info)",
			Value:       string(model.StatusSuccess),
			Sources:     cli.EnvVars("AGENTLOG_STATUS"),
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "metadata",
			Aliases:     []string{"m"},
			Usage:       "Metadata as a JSON object",
			Destination: &metadata,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:      "log",
		Usage:     "Record one activity event",
		ArgsUsage: "<action>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			action := c.Args().First()
			if action == "" {
				return goerr.New("action is required")
			}
			if agent == "" {
				return goerr.New("agent is required")
			}

			var meta model.Metadata
			if metadata != "" {
				if err := json.Unmarshal([]byte(metadata), &meta); err != nil {
					return goerr.Wrap(err, "metadata must be a JSON object")
				}
			}

			gate, err := cfg.newGate(ctx)
			if err != nil {
				return err
			}
			if gate != nil {
				decision, err := gate.Evaluate(ctx, map[string]any{
					"agent":    agent,
					"action":   action,
					"type":     actType,
					"status":   status,
					"metadata": map[string]any(meta),
				})
				if err != nil {
					return err
				}
				if decision.Exclude {
					logging.From(ctx).Info("activity excluded by policy", "reason", decision.Reason)
					return nil
				}
			}

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			activity, err := st.Append(ctx, store.AppendInput{
				Agent:    agent,
				Action:   action,
				Type:     model.ActivityType(actType),
				Status:   model.Status(status),
				Metadata: meta,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to record activity")
			}

			fmt.Fprintf(c.Root().Writer, "Activity recorded: %s\n", activity.ID)
			return nil
		},
	}
}
