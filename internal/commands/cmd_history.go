package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/parley/internal/printer"
	"github.com/urfave/cli/v3"
)

const historyTextWidth = 50

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	clear bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or manage compose history",
		UsageText: "parley history [options]",
		Description: `View or manage the history of sent messages.

The viewer recalls these with the up and down keys while composing.
Use --clear to remove all history entries.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "clear all compose history",
				Destination: &cmd.clear,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.clear {
		return cmd.runClear(ctx, p)
	}

	return cmd.runList(ctx, c)
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.flags.History.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		printer.Ctx(ctx).Infof("No compose history")
		return nil
	}

	table := printer.NewTable(c.Root().Writer, "TIME", "CONVERSATION", "TEXT")

	for _, e := range entries {
		text := strings.Join(strings.Fields(e.Text), " ")
		text = ansi.Truncate(text, historyTextWidth, "...")

		table.Row(e.Timestamp.Local().Format(time.DateTime), e.Conversation, text)
	}

	return table.Flush()
}

func (cmd *HistoryCmd) runClear(ctx context.Context, p *printer.Printer) error {
	if err := cmd.flags.History.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	p.Successf("Compose history cleared")
	return nil
}
