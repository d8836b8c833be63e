package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/core/history"
	"github.com/hay-kot/parley/internal/core/validate"
	"github.com/hay-kot/parley/internal/printer"
)

type SendCmd struct {
	flags *Flags

	file  string
	ai    bool
	audio bool
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags) *SendCmd {
	return &SendCmd{flags: flags}
}

// Register adds the send command to the application
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Append a message to a conversation",
		UsageText: "parley send [--ai] [--audio] [-f file] <conversation> [text]",
		Description: `Appends a message to the conversation, creating it if needed.

The message text can be provided as:
- A command-line argument
- From a file with -f/--file
- From stdin if no argument is provided

When stdin is a terminal and no text is given, an interactive prompt asks for
the text and the sender.

Examples:
  parley send support "Where is my order?"
  parley send support --ai "It shipped this morning."
  echo "Hello" | parley send support
  parley send support --ai -f reply.md`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "read message text from file",
				Destination: &cmd.file,
			},
			&cli.BoolFlag{
				Name:        "ai",
				Usage:       "send as the assistant instead of the user",
				Destination: &cmd.ai,
			},
			&cli.BoolFlag{
				Name:        "audio",
				Usage:       "mark the message as a voice message",
				Destination: &cmd.audio,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	name := c.Args().First()
	if err := validate.ConversationName(name); err != nil {
		return err
	}

	msg := chat.Message{
		Sender:  chat.SenderUser,
		IsAudio: cmd.audio,
	}
	if cmd.ai {
		msg.Sender = chat.SenderAI
	}

	switch {
	case c.NArg() >= 2:
		msg.Text = c.Args().Get(1)
	case cmd.file != "":
		data, err := os.ReadFile(cmd.file)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		msg.Text = trimText(string(data))
	case term.IsTerminal(int(os.Stdin.Fd())):
		if err := promptMessage(&msg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("prompt message: %w", err)
		}
	default:
		text, err := readText(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		msg.Text = text
	}

	if err := validate.MessageText(msg.Text); err != nil {
		return err
	}

	stored, err := cmd.flags.Store.Append(ctx, name, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	// Record history (best effort, don't fail on error)
	_ = cmd.flags.History.Save(ctx, history.Entry{
		Conversation: name,
		Text:         stored.Text,
		Timestamp:    stored.Timestamp,
	})

	p.Sent(stored, name)
	return nil
}

// promptMessage asks for the message text, sender and audio flag.
func promptMessage(msg *chat.Message) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[chat.Sender]().
				Title("Sender").
				Options(
					huh.NewOption("user", chat.SenderUser),
					huh.NewOption("ai", chat.SenderAI),
				).
				Value(&msg.Sender),
			huh.NewText().
				Title("Message").
				Validate(validate.MessageText).
				Value(&msg.Text),
			huh.NewConfirm().
				Title("Voice message?").
				Value(&msg.IsAudio),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	msg.Text = trimText(msg.Text)
	return nil
}

func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return trimText(string(data)), nil
}

// trimText drops trailing newlines left by editors and pipes.
func trimText(s string) string {
	return strings.TrimRight(s, "\r\n")
}
