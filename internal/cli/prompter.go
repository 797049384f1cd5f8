package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Prompter implements service.Console on top of a line input and a writer.
type Prompter struct {
	input          service.InputProvider
	writer         io.Writer
	progressWriter io.Writer
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithProgressWriter sends progress bars to w. Without it progress is not shown.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Prompter) {
		p.progressWriter = w
	}
}

// NewPrompter creates a new prompter reading from input and writing to writer.
func NewPrompter(input service.InputProvider, writer io.Writer, opts ...Option) *Prompter {
	if input == nil {
		input = NewNonBlockingReader(os.Stdin)
	}
	if writer == nil {
		writer = os.Stdout
	}

	p := &Prompter{
		input:  input,
		writer: writer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.input.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return answer, nil
}

// AskInt asks for a whole number. Anything else is a validation error.
func (p *Prompter) AskInt(ctx context.Context, label string) (int, error) {
	answer, err := p.Ask(ctx, label)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, common.Validationf("%q is not a whole number", answer)
	}
	return n, nil
}

// AskDecimal asks for a decimal number. Anything else is a validation error.
func (p *Prompter) AskDecimal(ctx context.Context, label string) (decimal.Decimal, error) {
	answer, err := p.Ask(ctx, label)
	if err != nil {
		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(answer)
	if err != nil {
		return decimal.Zero, common.Validationf("%q is not a number", answer)
	}
	return d, nil
}

// Menu prints a numbered list of options and returns the raw choice.
// Interpreting the answer is left to the caller.
func (p *Prompter) Menu(ctx context.Context, title string, options []string) (string, error) {
	var b strings.Builder
	b.WriteString("\n")
	if title != "" {
		b.WriteString(BoldStyle.Render(title))
		b.WriteString("\n")
	}
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}

	if _, err := fmt.Fprintln(p.writer, b.String()); err != nil {
		return "", fmt.Errorf("failed to write menu: %w", err)
	}

	return p.Ask(ctx, "Choose")
}

// Print writes text followed by a newline.
func (p *Prompter) Print(text string) {
	p.println(text)
}

// Success writes a success message.
func (p *Prompter) Success(msg string) {
	p.println(FormatSuccess(msg))
}

// Warn writes a warning message.
func (p *Prompter) Warn(msg string) {
	p.println(FormatWarning(msg))
}

// Fail writes an error message.
func (p *Prompter) Fail(msg string) {
	p.println(FormatError(msg))
}

// StartProgress starts a progress bar for total steps.
func (p *Prompter) StartProgress(total int, description string) service.Progress {
	if p.progressWriter == nil || total <= 0 {
		return noopProgress{}
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.progressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.progressWriter); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (p *Prompter) println(text string) {
	if _, err := fmt.Fprintln(p.writer, text); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

type noopProgress struct{}

func (noopProgress) Add(int) error { return nil }
func (noopProgress) Finish() error { return nil }
