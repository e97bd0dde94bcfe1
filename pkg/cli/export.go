package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func exportCommand() *cli.Command {
	var (
		cfg    config
		output string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Path to write the export to (default: stdout)",
			Destination: &output,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export the activity journal as pretty-printed JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			data, err := st.Export(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to export activities")
			}

			if output == "" {
				fmt.Fprintln(c.Root().Writer, string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return goerr.Wrap(err, "failed to write export file", goerr.V("path", output))
			}
			return nil
		},
	}
}

func importCommand() *cli.Command {
	var (
		cfg   config
		input string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a JSON export to import (default: stdin)",
			Destination: &input,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "import",
		Usage: "Replace the activity journal with a JSON export",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setup(ctx)

			var data []byte
			var err error
			if input == "" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(input)
			}
			if err != nil {
				return goerr.Wrap(err, "failed to read import data")
			}

			st, err := cfg.newStore()
			if err != nil {
				return err
			}

			result, err := st.Import(ctx, data)
			if err != nil {
				return goerr.Wrap(err, "failed to import activities")
			}

			fmt.Fprintf(c.Root().Writer, "Imported %d activities", result.Imported)
			if result.Skipped > 0 {
				fmt.Fprintf(c.Root().Writer, " (%d invalid records skipped)", result.Skipped)
			}
			fmt.Fprintln(c.Root().Writer)
			return nil
		},
	}
}
