package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/parley/internal/core/chat"
)

// TranscriptCheck loads every conversation and reports sequences the viewer
// would refuse to render. Unknown senders are reported as warnings.
type TranscriptCheck struct {
	store chat.Store
}

// NewTranscriptCheck creates a new transcript check.
func NewTranscriptCheck(store chat.Store) *TranscriptCheck {
	return &TranscriptCheck{store: store}
}

func (c *TranscriptCheck) Name() string {
	return "Transcripts"
}

func (c *TranscriptCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	names, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "List conversations",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if len(names) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Conversations",
			Status: StatusPass,
			Detail: "no conversations yet",
		})
		return result
	}

	for _, name := range names {
		result.Items = append(result.Items, c.checkConversation(ctx, name))
	}

	return result
}

func (c *TranscriptCheck) checkConversation(ctx context.Context, name string) CheckItem {
	msgs, err := c.store.Messages(ctx, name, time.Time{})
	if err != nil && !errors.Is(err, chat.ErrConversationNotFound) {
		return CheckItem{Label: name, Status: StatusFail, Detail: err.Error()}
	}

	if err := chat.ValidateSequence(msgs); err != nil {
		return CheckItem{Label: name, Status: StatusFail, Detail: firstProblem(err)}
	}

	for i, msg := range msgs {
		if msg.Timestamp.IsZero() {
			return CheckItem{
				Label:  name,
				Status: StatusFail,
				Detail: fmt.Sprintf("messages[%d].timestamp: missing timestamp", i),
			}
		}
	}

	if unknown := chat.UnknownSenders(msgs); len(unknown) > 0 {
		first := unknown[0]
		detail := fmt.Sprintf("messages[%d].sender: unknown sender %q, shown as neutral", first, msgs[first].Sender)
		if len(unknown) > 1 {
			detail += fmt.Sprintf(" (+%d more)", len(unknown)-1)
		}
		return CheckItem{Label: name, Status: StatusWarn, Detail: detail}
	}

	return CheckItem{
		Label:  name,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d message(s)", len(msgs)),
	}
}

// firstProblem summarizes a validation error as its first field error.
func firstProblem(err error) string {
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		detail := fe.Err.Error()
		if fe.Field != "" {
			detail = fe.Field + ": " + detail
		}
		if len(fieldErrs) > 1 {
			detail += fmt.Sprintf(" (+%d more)", len(fieldErrs)-1)
		}
		return detail
	}
	return err.Error()
}
