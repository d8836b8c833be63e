package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/validate"
	"github.com/hay-kot/parley/internal/tui"
)

type ViewCmd struct {
	flags *Flags

	noFollow bool
	readOnly bool
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the view flags, also registered on the root command for the
// default action.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-follow",
			Usage:       "do not poll for new messages",
			Destination: &cmd.noFollow,
		},
		&cli.BoolFlag{
			Name:        "read-only",
			Usage:       "disable composing messages",
			Destination: &cmd.readOnly,
		},
	}
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open a conversation in the interactive viewer",
		UsageText: "parley view [--no-follow] [--read-only] <conversation>",
		Description: `Opens the conversation in a scrollable list of message bubbles.

New messages written by other processes are picked up while following, and the
list scrolls to the newest message whenever the transcript changes.

Press 'i' to compose a message and 'q' to quit.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the viewer. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if err := validate.ConversationName(name); err != nil {
		return err
	}

	opts := tui.Options{
		Conversation: name,
		Follow:       !cmd.noFollow,
		ReadOnly:     cmd.readOnly,
		History:      cmd.flags.History,
		Logger:       log.With().Str("component", "tui").Logger(),
	}

	m := tui.New(cmd.flags.Store, cmd.flags.Config, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	fm, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if err := fm.Err(); err != nil {
		return err
	}

	if latest := chat.Latest(fm.Messages()); !latest.IsZero() {
		if err := cmd.flags.Markers.MarkRead(ctx, name, latest); err != nil {
			log.Warn().Err(err).Str("conversation", name).Msg("failed to record read marker")
		}
	}

	return nil
}
