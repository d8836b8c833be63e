package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/parley/internal/core/chat"
	"github.com/hay-kot/parley/internal/printer"
)

type LsCmd struct {
	flags *Flags

	match  string
	format string
}

// conversationSummary is one row of ls output.
type conversationSummary struct {
	Name          string    `json:"name"`
	MessageCount  int       `json:"message_count"`
	Unread        int       `json:"unread"`
	LastMessageAt time.Time `json:"last_message_at,omitzero"`
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List conversations",
		UsageText: "parley ls [--match <pattern>] [--format table|json]",
		Description: `Lists conversations with their message counts, unread replies, and last activity.

Replies are unread until the conversation is opened in the viewer.

Patterns use glob syntax with ** support:
  parley ls --match 'support-*'
  parley ls --match '*bot*' --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only list conversations matching a glob pattern",
				Destination: &cmd.match,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (table, json)",
				Value:       "table",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	names, err := cmd.flags.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("list conversations: %w", err)
	}

	names, err = matchConversations(names, cmd.match)
	if err != nil {
		return err
	}

	markers, err := cmd.flags.Markers.All(ctx)
	if err != nil {
		return fmt.Errorf("load read markers: %w", err)
	}

	summaries := make([]conversationSummary, 0, len(names))
	for _, name := range names {
		msgs, err := cmd.flags.Store.Messages(ctx, name, time.Time{})
		if err != nil && !errors.Is(err, chat.ErrConversationNotFound) {
			return fmt.Errorf("load %s: %w", name, err)
		}
		summaries = append(summaries, summarize(name, msgs, markers[name]))
	}

	out := c.Root().Writer

	switch cmd.format {
	case "json":
		return printSummariesJSON(out, summaries)
	case "table", "":
		if len(summaries) == 0 {
			p.Infof("No conversations found")
			return nil
		}
		return printSummariesTable(out, summaries)
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", cmd.format)
	}
}

// matchConversations filters names by a doublestar pattern. An empty pattern
// matches everything.
func matchConversations(names []string, pattern string) ([]string, error) {
	if pattern == "" {
		return names, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var matched []string
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// summarize counts msgs and the assistant messages newer than lastRead.
func summarize(name string, msgs []chat.Message, lastRead time.Time) conversationSummary {
	return conversationSummary{
		Name:          name,
		MessageCount:  len(msgs),
		Unread:        chat.Unread(msgs, lastRead),
		LastMessageAt: chat.Latest(msgs),
	}
}

func printSummariesJSON(w io.Writer, summaries []conversationSummary) error {
	enc := json.NewEncoder(w)
	for _, s := range summaries {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode %s: %w", s.Name, err)
		}
	}
	return nil
}

func printSummariesTable(w io.Writer, summaries []conversationSummary) error {
	table := printer.NewTable(w, "NAME", "MESSAGES", "UNREAD", "LAST MESSAGE")

	for _, s := range summaries {
		last := "-"
		if !s.LastMessageAt.IsZero() {
			last = s.LastMessageAt.Local().Format(time.DateTime)
		}
		table.Row(s.Name, strconv.Itoa(s.MessageCount), strconv.Itoa(s.Unread), last)
	}

	return table.Flush()
}
