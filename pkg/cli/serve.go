package cli

import (
	"context"

	"github.com/agentlog/agentlog/pkg/service/mcp"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the activity journal as MCP tools over stdio",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			st, err := cfg.newStore()
			if err != nil {
				return err
			}
			gate, err := cfg.newGate(ctx)
			if err != nil {
				return err
			}

			return mcp.New(st, gate).Run(ctx)
		},
	}
}
