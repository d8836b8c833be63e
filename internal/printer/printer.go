// Package printer writes styled CLI output: errors, validation failures,
// message receipts, tables, and doctor check items.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/parley/internal/core/chat"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorBlue      = "\033[38;2;122;162;247m" // #7aa2f7
	ColorMagenta   = "\033[38;2;187;154;247m" // #bb9af7
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

const (
	boxTop    = "╭"
	boxSide   = "│"
	boxBottom = "╵"
)

type ctxKey struct{}

// Printer writes formatted output to a writer.
type Printer struct {
	writer io.Writer
}

// New creates a Printer that writes to w.
func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.writer, s+"\n")
}

func paint(color, text string) string {
	return color + text + ColorReset
}

// FatalError prints err in an error box. Errors carrying criterio.FieldErrors
// list one field per line. It does not exit.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.validationBox(err, fieldErrs)
		return
	}

	p.line(paint(ColorRed, boxTop+" Error"))
	p.line(paint(ColorRed, boxSide) + " " + paint(ColorGray, err.Error()))
	p.line(paint(ColorRed, boxBottom))
}

func (p *Printer) validationBox(err error, fieldErrs criterio.FieldErrors) {
	// leading context such as "load config: invalid config"
	var prefix string
	if idx := strings.Index(err.Error(), fieldErrs.Error()); idx > 0 {
		prefix = strings.TrimSuffix(err.Error()[:idx], ": ")
	}

	side := paint(ColorRed, boxSide)

	p.line(paint(ColorRed, boxTop+" Validation Error"))
	if prefix != "" {
		p.line(side + " " + paint(ColorGray, prefix))
		p.line(side)
	}
	for _, fe := range fieldErrs {
		field := ""
		if fe.Field != "" {
			field = paint(ColorGray, fe.Field+": ")
		}
		p.line(side + " " + paint(ColorRed, Cross) + " " + field + fe.Err.Error())
	}
	p.line(paint(ColorRed, boxBottom))
}

// Errorf prints a red failure line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(paint(ColorRed, Cross+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a green success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(paint(ColorGreen, Check+" "+fmt.Sprintf(format, args...)))
}

// Infof prints a gray info line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(paint(ColorGray, Dot+" "+fmt.Sprintf(format, args...)))
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Sent confirms a stored message. The sender is colored the way the viewer
// places it: user messages in the accent color, everything else neutral.
func (p *Printer) Sent(msg chat.Message, conversation string) {
	p.line(paint(ColorGreen, Check) + " Sent " + SenderLabel(msg.Sender) + " message to " + ColorBold + conversation + ColorReset)
	p.line("  " + paint(ColorGray, "id "+msg.ID))
}

// SenderLabel returns the sender name colored by side.
func SenderLabel(s chat.Sender) string {
	switch {
	case s.IsUser():
		return paint(ColorBlue, s.String())
	case s.Known():
		return paint(ColorMagenta, s.String())
	default:
		return paint(ColorGray, s.String())
	}
}

// Section prints a bold, underlined header.
func (p *Printer) Section(title string) {
	p.line(ColorBold + ColorUnderline + title + ColorReset)
}

// CheckItem prints a passing item.
func (p *Printer) CheckItem(label, detail string) {
	p.item(ColorGreen, Check, label, detail)
}

// WarnItem prints a warning item.
func (p *Printer) WarnItem(label, detail string) {
	p.item(ColorYellow, Dot, label, detail)
}

// FailItem prints a failed item.
func (p *Printer) FailItem(label, detail string) {
	p.item(ColorRed, Cross, label, detail)
}

func (p *Printer) item(color, symbol, label, detail string) {
	s := "  " + paint(color, symbol) + " " + label
	if detail != "" {
		s += ": " + detail
	}
	p.line(s)
}

// Table writes tab-aligned rows under a header row.
type Table struct {
	tw *tabwriter.Writer
}

// NewTable starts a table on w with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	t.Row(headers...)
	return t
}

// Row adds a row. Cells must not contain tabs or newlines.
func (t *Table) Row(cells ...string) {
	_, _ = io.WriteString(t.tw, strings.Join(cells, "\t")+"\n")
}

// Flush writes the aligned table.
func (t *Table) Flush() error {
	return t.tw.Flush()
}
