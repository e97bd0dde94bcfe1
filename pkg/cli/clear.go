package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func clearCommand() *cli.Command {
	var (
		cfg   config
		force bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Skip the confirmation prompt",
			Destination: &force,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "clear",
		Usage: "Remove all recorded activities",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			if !force {
				total := st.Aggregate(ctx).Total
				ok, err := confirm(fmt.Sprintf("Clear %d activities? (y/N): ", total))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.Root().Writer, "Aborted")
					return nil
				}
			}

			if err := st.Clear(ctx); err != nil {
				return goerr.Wrap(err, "failed to clear activities")
			}

			fmt.Fprintln(c.Root().Writer, "All activities cleared")
			return nil
		},
	}
}

func confirm(prompt string) (bool, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return false, goerr.Wrap(err, "failed to open prompt")
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		// Treat EOF and interrupt as "no"
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
