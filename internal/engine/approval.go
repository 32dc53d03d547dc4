package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Approval is the operator's answer for an upload-eligible item.
type Approval int

const (
	ApprovalGranted Approval = iota
	ApprovalDeclined
	ApprovalCancelled
)

// Approver decides whether an eligible subtitle gets uploaded.
// The decision engine is strategy-agnostic: automatic and interactive
// policies both implement this single capability.
type Approver interface {
	Approve(ctx context.Context, item Item, sub Subtitle) (Approval, error)
}

// AutoApprover grants every upload after a randomized backoff wait.
// An interrupt during the wait cancels only the current item.
type AutoApprover struct {
	Waiter     *Waiter
	Interrupts <-chan os.Signal
	Log        *slog.Logger
}

// NewAutoApprover creates an automatic approval strategy.
func NewAutoApprover(w *Waiter, interrupts <-chan os.Signal, log *slog.Logger) *AutoApprover {
	if log == nil {
		log = slog.Default()
	}
	return &AutoApprover{Waiter: w, Interrupts: interrupts, Log: log}
}

// Approve waits out the backoff window and grants the upload unless an
// interrupt or context cancellation arrives first.
func (a *AutoApprover) Approve(ctx context.Context, item Item, sub Subtitle) (Approval, error) {
	a.Log.Info("waiting before upload", "item", item.Title, "min", a.Waiter.Min, "max", a.Waiter.Max)
	if a.Waiter.Wait(ctx, a.Interrupts) == WaitCancelled {
		return ApprovalCancelled, nil
	}
	return ApprovalGranted, nil
}

// PromptApprover asks the operator synchronously before each upload.
// No randomized delay applies on the manual path.
type PromptApprover struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewPromptApprover creates an interactive approval strategy reading
// answers from in and writing prompts to out.
func NewPromptApprover(in io.Reader, out io.Writer) *PromptApprover {
	return &PromptApprover{In: in, Out: out, reader: bufio.NewReader(in)}
}

// Approve prompts for a Y/n answer. Anything except an explicit "n" grants
// the upload, matching the operator-friendly default.
func (p *PromptApprover) Approve(ctx context.Context, item Item, sub Subtitle) (Approval, error) {
	fmt.Fprintf(p.Out, "Upload %s for %q? (Y/n): ", sub.Path, item.Title)

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return ApprovalDeclined, fmt.Errorf("read answer: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(line), "n") {
		return ApprovalDeclined, nil
	}
	return ApprovalGranted, nil
}
