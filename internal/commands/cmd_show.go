package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/config"
	"github.com/hay-kot/parley/internal/core/validate"
	"github.com/hay-kot/parley/internal/render"
	"github.com/hay-kot/parley/internal/styles"
)

const defaultShowWidth = 80

type ShowCmd struct {
	flags *Flags

	width int
	last  int
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print a rendered conversation",
		UsageText: "parley show [--width N] [--last N] <conversation>",
		Description: `Renders the conversation once and writes it to stdout.

The width defaults to the terminal width, or 80 columns when stdout is not a
terminal.

Examples:
  parley show support
  parley show support --last 10
  parley show support --width 60 > transcript.txt`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "render width in columns (default: terminal width)",
				Destination: &cmd.width,
			},
			&cli.IntFlag{
				Name:        "last",
				Aliases:     []string{"n"},
				Usage:       "render only the last N messages",
				Destination: &cmd.last,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if err := validate.ConversationName(name); err != nil {
		return err
	}

	msgs, err := cmd.flags.Store.Messages(ctx, name, time.Time{})
	if err != nil {
		if errors.Is(err, chat.ErrConversationNotFound) {
			return fmt.Errorf("conversation %q not found", name)
		}
		return fmt.Errorf("load messages: %w", err)
	}

	out, err := renderConversation(cmd.flags.Config, msgs, cmd.resolveWidth(), cmd.last)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Root().Writer, out)
	return err
}

func (cmd *ShowCmd) resolveWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultShowWidth
}

// renderConversation validates msgs and renders the trailing last messages
// (all when last <= 0) at the given width.
func renderConversation(cfg *config.Config, msgs []chat.Message, width, last int) (string, error) {
	if err := chat.ValidateSequence(msgs); err != nil {
		return "", fmt.Errorf("invalid conversation: %w", err)
	}

	if last > 0 && len(msgs) > last {
		msgs = msgs[len(msgs)-last:]
	}

	r := render.New(render.Options{
		Clock:        cfg.Clock(),
		Bubbles:      styles.NewBubbles(cfg.Theme),
		WidthPercent: cfg.BubbleWidthPercent,
		Markdown:     cfg.Markdown,
		Logger:       log.With().Str("component", "render").Logger(),
	})

	return r.Render(msgs, width)
}
