package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/parley/internal/printer"
	"github.com/urfave/cli/v3"
)

const defaultPruneAge = 30 * 24 * time.Hour

type PruneCmd struct {
	flags *Flags

	olderThan time.Duration
}

// NewPruneCmd creates a new prune command
func NewPruneCmd(flags *Flags) *PruneCmd {
	return &PruneCmd{flags: flags}
}

// Register adds the prune command to the application
func (cmd *PruneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prune",
		Usage:     "Remove old messages from all conversations",
		UsageText: "parley prune [--older-than 720h]",
		Description: `Removes messages older than the given age from every conversation.

Conversations are kept even when all of their messages are removed.`,
		Action: cmd.run,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "older-than",
				Usage:       "remove messages older than this duration",
				Value:       defaultPruneAge,
				Destination: &cmd.olderThan,
			},
		},
	})

	return app
}

func (cmd *PruneCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.olderThan <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", cmd.olderThan)
	}

	count, err := cmd.flags.Store.Prune(ctx, cmd.olderThan)
	if err != nil {
		return fmt.Errorf("prune messages: %w", err)
	}

	if count == 0 {
		p.Infof("No messages older than %s", cmd.olderThan)
		return nil
	}

	p.Successf("Pruned %d message(s)", count)

	return nil
}
