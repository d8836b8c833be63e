package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/parley/internal/core/chat"
)

func TestFatalError_Plain(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).FatalError(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "╭ Error")
	assert.Contains(t, out, "boom")
}

func TestFatalError_Nil(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).FatalError(nil)

	assert.Empty(t, buf.String())
}

func TestFatalError_FieldErrors(t *testing.T) {
	var buf bytes.Buffer

	fieldErrs := criterio.FieldErrors{
		{Field: "time_format", Err: errors.New("must be one of auto, 12h, 24h")},
		{Field: "theme.user_background", Err: errors.New(`invalid hex color "blue"`)},
	}
	New(&buf).FatalError(fmt.Errorf("load config: %w", fieldErrs))

	out := buf.String()
	assert.Contains(t, out, "╭ Validation Error")
	assert.Contains(t, out, "load config")
	assert.Contains(t, out, "time_format: ")
	assert.Contains(t, out, "theme.user_background: ")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))

	assert.NotNil(t, Ctx(context.Background()))
}

func TestItems(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.CheckItem("Config valid", "")
	p.WarnItem("gone.json.lock", "lock file without transcript")
	p.FailItem("support", "messages[1].id: duplicate id")

	out := buf.String()
	assert.Contains(t, out, Check+ColorReset+" Config valid\n")
	assert.Contains(t, out, "gone.json.lock: lock file without transcript")
	assert.Contains(t, out, Cross)
}

func TestSent(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sent(chat.Message{ID: "abc123", Sender: chat.SenderUser}, "support")

	out := buf.String()
	assert.Contains(t, out, ColorBlue+"user"+ColorReset)
	assert.Equal(t, "✔ Sent user message to support\n  id abc123\n", ansi.Strip(out))
}

func TestSenderLabel(t *testing.T) {
	tests := []struct {
		sender chat.Sender
		color  string
		text   string
	}{
		{sender: chat.SenderUser, color: ColorBlue, text: "user"},
		{sender: chat.SenderAI, color: ColorMagenta, text: "ai"},
		{sender: "system", color: ColorGray, text: "system"},
		{sender: "", color: ColorGray, text: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.color+tt.text+ColorReset, SenderLabel(tt.sender))
		})
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, "NAME", "MESSAGES")
	table.Row("support", "12")
	table.Row("a", "3")
	require.NoError(t, table.Flush())

	assert.Equal(t, "NAME     MESSAGES\nsupport  12\na        3\n", buf.String())
}
