package cli

import (
	"context"

	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "agentlog",
		Usage: "Local activity journal for AI coding agents",
		Commands: []*cli.Command{
			logCommand(),
			listCommand(),
			statsCommand(),
			clearCommand(),
			exportCommand(),
			importCommand(),
			watchCommand(),
			serveCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
